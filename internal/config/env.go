package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// ScanDir is the folder scanned for PDFs (non-recursive).
const ScanDir = "."

// DecayExponent controls how fast pick probability falls with page count:
// prob(npages) is proportional to (1/npages)^DecayExponent. Raise it to favor
// shorter papers more aggressively.
const DecayExponent = 1.0

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
    Level        string
    Pretty       bool
    File         string
    MaxSizeMB    int
    MaxBackups   int
    MaxAgeDays   int
    Compress     bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
    Send          bool
    APIKey        string
    OrgID         string
    Dataset       string
    FlushInterval time.Duration
}

// PDFConfig selects the page counting backend ("pdfcpu"|"fitz").
type PDFConfig struct {
    Backend string
}

// MetricsConfig controls the optional Prometheus textfile dump.
type MetricsConfig struct {
    Textfile string
}

// PickerConfig carries the compile-time pick settings.
type PickerConfig struct {
    Dir   string
    Decay float64
}

// Config is the top-level configuration.
type Config struct {
    Logging LoggingConfig
    Axiom   AxiomConfig
    PDF     PDFConfig
    Metrics MetricsConfig
    Picker  PickerConfig
}

// FromEnv loads ambient configuration from environment with sensible defaults.
// Picker settings always come from the constants above.
func FromEnv() Config {
    cfg := Config{}

    // Logging defaults: pretty console, no file
    cfg.Logging = LoggingConfig{
        Level:      getEnv("LOG_LEVEL", "info"),
        Pretty:     parseBool(getEnv("LOG_PRETTY", "true")),
        File:       getEnv("LOG_FILE", ""),
        MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "10"), 10),
        MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "3"), 3),
        MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
        Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
    }

    // Axiom defaults
    baseDataset := getEnv("AXIOM_DATASET", "dev")
    cfg.Axiom = AxiomConfig{
        Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
        APIKey:        getEnv("AXIOM_API_KEY", ""),
        OrgID:         getEnv("AXIOM_ORG_ID", ""),
        Dataset:       baseDataset + "_paperpick",
        FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
    }

    cfg.PDF = PDFConfig{
        Backend: strings.ToLower(strings.TrimSpace(getEnv("PDF_BACKEND", "pdfcpu"))),
    }

    cfg.Metrics = MetricsConfig{
        Textfile: getEnv("METRICS_TEXTFILE", ""),
    }

    cfg.Picker = PickerConfig{
        Dir:   ScanDir,
        Decay: DecayExponent,
    }

    return cfg
}

// Helpers
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func parseInt(s string, def int) int {
    if s == "" { return def }
    if n, err := strconv.Atoi(s); err == nil { return n }
    return def
}

func parseBool(s string) bool {
    v := strings.ToLower(strings.TrimSpace(s))
    return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
    if s == "" { return def }
    if d, err := time.ParseDuration(s); err == nil { return d }
    return def
}
