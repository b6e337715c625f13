package metrics

import (
    "sync"
    "time"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    documentsScanned = prometheus.NewCounter(
        prometheus.CounterOpts{
            Namespace: "paperpick",
            Name:      "documents_scanned_total",
            Help:      "PDF documents whose page count was read",
        },
    )

    documentPages = prometheus.NewHistogram(
        prometheus.HistogramOpts{
            Namespace: "paperpick",
            Name:      "document_pages",
            Help:      "Page counts of scanned documents",
            Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
        },
    )

    picks = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "paperpick",
            Name:      "picks_total",
            Help:      "Pick attempts by result (ok, empty_corpus, read_error, degenerate_weight, error)",
        },
        []string{"result"},
    )

    launches = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "paperpick",
            Name:      "launches_total",
            Help:      "Viewer launches by strategy and result",
        },
        []string{"strategy", "result"},
    )

    pickedPages = prometheus.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "paperpick",
            Name:      "picked_pages",
            Help:      "Page count of the most recently picked document",
        },
    )

    runDuration = prometheus.NewHistogram(
        prometheus.HistogramOpts{
            Namespace: "paperpick",
            Name:      "run_duration_seconds",
            Help:      "Wall time of scan, weighting and pick",
            Buckets:   prometheus.DefBuckets,
        },
    )

    registry = prometheus.NewRegistry()
    initOnce sync.Once
)

// Init registers collectors on the package registry. Safe to call repeatedly.
func Init() {
    initOnce.Do(func() {
        registry.MustRegister(documentsScanned, documentPages, picks, launches, pickedPages, runDuration)
    })
}

// Registry exposes the registry for dumps and tests.
func Registry() *prometheus.Registry { return registry }

// WriteTextfile writes all registered metrics in the text exposition format,
// for node_exporter's textfile collector. A no-op for an empty path.
func WriteTextfile(path string) error {
    if path == "" { return nil }
    return prometheus.WriteToTextfile(path, registry)
}

func ObserveDocument(pages int) {
    documentsScanned.Inc()
    documentPages.Observe(float64(pages))
}

func IncPick(result string)                    { picks.WithLabelValues(result).Inc() }
func IncLaunch(strategy string, ok bool)       { launches.WithLabelValues(strategy, resultStr(ok)).Inc() }
func SetPickedPages(pages int)                 { pickedPages.Set(float64(pages)) }
func ObserveRun(d time.Duration)               { runDuration.Observe(d.Seconds()) }

func resultStr(ok bool) string { if ok { return "ok" }; return "error" }
