package logger

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "sync"
    "time"

    "github.com/axiomhq/axiom-go/axiom"
    "github.com/axiomhq/axiom-go/axiom/ingest"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options defines logger initialization parameters.
type Options struct {
    Level        string
    Pretty       bool
    File         string
    MaxSizeMB    int
    MaxBackups   int
    MaxAgeDays   int
    Compress     bool

    // Console overrides the console sink (defaults to os.Stderr).
    Console      io.Writer

    // Axiom
    SendToAxiom  bool
    AxiomAPIKey  string
    AxiomOrgID   string
    AxiomDataset string
    AxiomFlush   time.Duration
}

const serviceName = "paperpick"

var (
    global = zerolog.Nop()
    sink   *axiomSink
)

// Init sets up the global logger: console on stderr, optional rotated file,
// optional Axiom forwarding. Stdout is left to command output.
func Init(opts Options) error {
    var writers []io.Writer

    if opts.File != "" {
        if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
            return fmt.Errorf("create logs dir: %w", err)
        }
        writers = append(writers, &lumberjack.Logger{
            Filename:   opts.File,
            MaxSize:    opts.MaxSizeMB,
            MaxBackups: opts.MaxBackups,
            MaxAge:     opts.MaxAgeDays,
            Compress:   opts.Compress,
        })
    }

    console := opts.Console
    if console == nil {
        console = os.Stderr
    }
    if opts.Pretty {
        writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen})
    } else {
        writers = append(writers, console)
    }

    if opts.SendToAxiom && opts.AxiomAPIKey != "" {
        s, err := newAxiomSink(opts.AxiomAPIKey, opts.AxiomOrgID, opts.AxiomDataset, opts.AxiomFlush)
        if err != nil {
            // keep going without Axiom, the run itself is unaffected
            fmt.Fprintf(os.Stderr, "Axiom disabled: %v\n", err)
        } else {
            sink = s
            writers = append(writers, s)
        }
    }

    zerolog.TimeFieldFormat = time.RFC3339
    lvl, err := zerolog.ParseLevel(opts.Level)
    if err != nil || opts.Level == "" {
        lvl = zerolog.InfoLevel
    }

    global = zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp().Logger()
    log.Logger = global
    return nil
}

// Close flushes any buffered external loggers.
func Close() {
    if sink != nil {
        _ = sink.Close()
        sink = nil
    }
}

// WithRun returns a child logger tagged with the run id.
func WithRun(runID string) zerolog.Logger {
    return global.With().Str("run_id", runID).Logger()
}

// axiomSink is an io.Writer that decodes zerolog JSON lines and ships them
// to Axiom in batches. Debug lines are not forwarded.
type axiomSink struct {
    client  *axiom.Client
    dataset string
    events  chan axiom.Event
    done    chan struct{}
    wg      sync.WaitGroup
}

const axiomBatch = 100

func newAxiomSink(token, orgID, dataset string, flushEvery time.Duration) (*axiomSink, error) {
    if dataset == "" { dataset = "dev_" + serviceName }
    opts := []axiom.Option{axiom.SetToken(token)}
    if orgID != "" { opts = append(opts, axiom.SetOrganizationID(orgID)) }
    c, err := axiom.NewClient(opts...)
    if err != nil { return nil, err }
    if flushEvery <= 0 { flushEvery = 10 * time.Second }
    s := &axiomSink{
        client:  c,
        dataset: dataset,
        events:  make(chan axiom.Event, 256),
        done:    make(chan struct{}),
    }
    s.wg.Add(1)
    go s.loop(flushEvery)
    return s, nil
}

func (s *axiomSink) Write(p []byte) (int, error) {
    ev := axiom.Event{}
    if err := json.Unmarshal(p, &ev); err != nil {
        ev = axiom.Event{"message": string(p), "level": "info"}
    }
    if lvl, _ := ev["level"].(string); lvl == "debug" {
        return len(p), nil
    }
    ev["service"] = serviceName
    if _, ok := ev[ingest.TimestampField]; !ok {
        ev[ingest.TimestampField] = time.Now()
    }
    select {
    case s.events <- ev:
    default:
        // buffer full, drop
    }
    return len(p), nil
}

func (s *axiomSink) loop(flushEvery time.Duration) {
    defer s.wg.Done()
    ticker := time.NewTicker(flushEvery)
    defer ticker.Stop()
    batch := make([]axiom.Event, 0, axiomBatch)
    flush := func() {
        if len(batch) == 0 { return }
        ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
        _, _ = s.client.IngestEvents(ctx, s.dataset, batch)
        cancel()
        batch = batch[:0]
    }
    for {
        select {
        case ev := <-s.events:
            batch = append(batch, ev)
            if len(batch) >= axiomBatch { flush() }
        case <-ticker.C:
            flush()
        case <-s.done:
            // drain what is already queued before the final flush
            for {
                select {
                case ev := <-s.events:
                    batch = append(batch, ev)
                default:
                    flush()
                    return
                }
            }
        }
    }
}

func (s *axiomSink) Close() error {
    close(s.done)
    s.wg.Wait()
    return nil
}
