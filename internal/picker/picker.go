// Package picker runs the scan → group → weigh → pick → open pipeline once.
package picker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/local/paperpick/internal/corpus"
	"github.com/local/paperpick/internal/launcher"
	"github.com/local/paperpick/internal/logger"
	"github.com/local/paperpick/internal/metrics"
	"github.com/local/paperpick/internal/sampler"
)

// Scanner lists the documents of a directory with their page counts.
type Scanner interface {
	Scan(ctx context.Context, dir string) ([]corpus.Document, error)
}

// Dependencies wires the pipeline stages.
type Dependencies struct {
	Dir     string
	Decay   float64
	Scanner Scanner
	Rand    sampler.Source   // nil uses sampler.Default()
	Opener  launcher.Opener  // only needed by Run
}

// Picker holds the stages for one run. Nothing is kept between runs.
type Picker struct {
	deps  Dependencies
	runID string
	log   zerolog.Logger
}

// New creates a picker tagged with a fresh run id.
func New(deps Dependencies) *Picker {
	if deps.Rand == nil {
		deps.Rand = sampler.Default()
	}
	id := uuid.NewString()
	return &Picker{deps: deps, runID: id, log: logger.WithRun(id)}
}

// RunID identifies this run in logs.
func (p *Picker) RunID() string { return p.runID }

// Odds scans the directory and returns the groups and their weight table.
func (p *Picker) Odds(ctx context.Context) (corpus.Groups, sampler.WeightTable, error) {
	if p.deps.Scanner == nil {
		return nil, nil, errors.New("picker has no scanner")
	}
	p.log.Info().Str("dir", p.deps.Dir).Float64("decay", p.deps.Decay).Msg("scanning for PDFs")

	docs, err := p.deps.Scanner.Scan(ctx, p.deps.Dir)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range docs {
		metrics.ObserveDocument(d.Pages)
	}

	groups, err := corpus.Group(docs)
	if err != nil {
		return nil, nil, err
	}

	table, err := sampler.BuildWeights(groups, p.deps.Decay)
	if err != nil {
		if errors.Is(err, sampler.ErrEmptyCorpus) {
			return nil, nil, fmt.Errorf("%s: %w", p.deps.Dir, err)
		}
		return nil, nil, err
	}
	p.log.Info().Int("documents", len(docs)).Int("page_counts", len(table)).Msg("built weight table")
	return groups, table, nil
}

// Pick selects a document without opening it.
func (p *Picker) Pick(ctx context.Context) (sel sampler.Selection, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveRun(time.Since(start))
		metrics.IncPick(Result(err))
	}()

	groups, table, err := p.Odds(ctx)
	if err != nil {
		return sampler.Selection{}, err
	}
	sel, err = sampler.Pick(groups, table, p.deps.Rand)
	if err != nil {
		return sampler.Selection{}, err
	}
	metrics.SetPickedPages(sel.Pages)
	p.log.Info().
		Str("path", sel.Path).
		Int("pages", sel.Pages).
		Float64("probability", sel.FileProbability(len(groups[sel.Pages]))).
		Msg("picked paper")
	return sel, nil
}

// Run picks a document and opens it. Nothing is launched when the pick fails.
func (p *Picker) Run(ctx context.Context) (sampler.Selection, error) {
	if p.deps.Opener == nil {
		return sampler.Selection{}, errors.New("picker has no opener")
	}
	sel, err := p.Pick(ctx)
	if err != nil {
		return sampler.Selection{}, err
	}
	strategy := string(p.deps.Opener.Strategy())
	if err := p.deps.Opener.Open(ctx, sel.Path); err != nil {
		metrics.IncLaunch(strategy, false)
		return sel, err
	}
	metrics.IncLaunch(strategy, true)
	p.log.Debug().Str("strategy", strategy).Str("path", sel.Path).Msg("viewer launched")
	return sel, nil
}

// Result classifies err for metrics and exit reporting.
func Result(err error) string {
	var (
		readErr *corpus.CorpusReadError
		degErr  *corpus.DegenerateWeightError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sampler.ErrEmptyCorpus):
		return "empty_corpus"
	case errors.As(err, &readErr):
		return "read_error"
	case errors.As(err, &degErr):
		return "degenerate_weight"
	default:
		return "error"
	}
}
