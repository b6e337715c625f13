package picker

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/paperpick/internal/corpus"
	"github.com/local/paperpick/internal/launcher"
	"github.com/local/paperpick/internal/pagecount"
	"github.com/local/paperpick/internal/pdftest"
	"github.com/local/paperpick/internal/sampler"
)

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(_ context.Context, path string) error {
	f.opened = append(f.opened, path)
	return f.err
}
func (f *fakeOpener) Strategy() launcher.Strategy { return launcher.StrategyXDGOpen }
func (f *fakeOpener) Available() error           { return nil }

type staticScanner struct {
	docs []corpus.Document
	err  error
}

func (s staticScanner) Scan(context.Context, string) ([]corpus.Document, error) {
	return s.docs, s.err
}

func seeded() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func TestRun_OpensPickedPaperFromCorpus(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 2)
	b := pdftest.Write(t, dir, "b.pdf", 2)
	c := pdftest.Write(t, dir, "c.pdf", 10)

	opener := &fakeOpener{}
	p := New(Dependencies{
		Dir:     dir,
		Decay:   1.0,
		Scanner: corpus.NewScanner(pagecount.NewPDFCPU()),
		Rand:    seeded(),
		Opener:  opener,
	})

	sel, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []string{a, b, c}, sel.Path)
	assert.Equal(t, []string{sel.Path}, opener.opened)
	assert.NotEmpty(t, p.RunID())
}

func TestOdds_ScenarioA(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "a.pdf", 2)
	pdftest.Write(t, dir, "b.pdf", 2)
	pdftest.Write(t, dir, "c.pdf", 10)

	p := New(Dependencies{Dir: dir, Decay: 1.0, Scanner: corpus.NewScanner(pagecount.NewPDFCPU())})
	groups, table, err := p.Odds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, corpus.Groups{
		2:  {filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")},
		10: {filepath.Join(dir, "c.pdf")},
	}, groups)
	assert.InDelta(t, 1.0/1.1, table.Probability(2), 1e-9)
	assert.InDelta(t, 0.1/1.1, table.Probability(10), 1e-9)
}

func TestRun_ScenarioBSingleFile(t *testing.T) {
	dir := t.TempDir()
	x := pdftest.Write(t, dir, "x.pdf", 5)

	for i := 0; i < 5; i++ {
		opener := &fakeOpener{}
		sel, err := New(Dependencies{
			Dir:     dir,
			Decay:   1.0,
			Scanner: corpus.NewScanner(pagecount.NewPDFCPU()),
			Opener:  opener,
		}).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sampler.Selection{Path: x, Pages: 5, Probability: 1}, sel)
		assert.Equal(t, []string{x}, opener.opened)
	}
}

func TestRun_EmptyCorpusLaunchesNothing(t *testing.T) {
	dir := t.TempDir()
	pdftest.WriteRaw(t, dir, "readme.txt", []byte("no papers here"))

	opener := &fakeOpener{}
	_, err := New(Dependencies{
		Dir:     dir,
		Decay:   1.0,
		Scanner: corpus.NewScanner(pagecount.NewPDFCPU()),
		Opener:  opener,
	}).Run(context.Background())

	assert.ErrorIs(t, err, sampler.ErrEmptyCorpus)
	assert.Contains(t, err.Error(), dir)
	assert.Empty(t, opener.opened)
	assert.Equal(t, "empty_corpus", Result(err))
}

func TestRun_DegenerateWeightLaunchesNothing(t *testing.T) {
	opener := &fakeOpener{}
	_, err := New(Dependencies{
		Dir:     "papers",
		Decay:   1.0,
		Scanner: staticScanner{docs: []corpus.Document{{Path: "papers/ok.pdf", Pages: 3}, {Path: "papers/blank.pdf", Pages: 0}}},
		Opener:  opener,
	}).Run(context.Background())

	var degErr *corpus.DegenerateWeightError
	require.ErrorAs(t, err, &degErr)
	assert.Equal(t, "papers/blank.pdf", degErr.Path)
	assert.Empty(t, opener.opened)
	assert.Equal(t, "degenerate_weight", Result(err))
}

func TestRun_CorpusReadErrorLaunchesNothing(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "good.pdf", 3)
	bad := pdftest.WriteRaw(t, dir, "junk.pdf", []byte("%PDF-1.4\nthis is not really a pdf body\n"))

	opener := &fakeOpener{}
	_, err := New(Dependencies{
		Dir:     dir,
		Decay:   1.0,
		Scanner: corpus.NewScanner(pagecount.NewPDFCPU()),
		Opener:  opener,
	}).Run(context.Background())

	var readErr *corpus.CorpusReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, bad, readErr.Path)
	assert.Empty(t, opener.opened)
	assert.Equal(t, "read_error", Result(err))
}

func TestRun_LauncherFailureReturnsSelection(t *testing.T) {
	osErr := errors.New("no handler")
	opener := &fakeOpener{err: osErr}
	sel, err := New(Dependencies{
		Dir:     "papers",
		Decay:   2,
		Scanner: staticScanner{docs: []corpus.Document{{Path: "papers/one.pdf", Pages: 1}}},
		Opener:  opener,
	}).Run(context.Background())

	assert.ErrorIs(t, err, osErr)
	assert.Equal(t, "papers/one.pdf", sel.Path)
	assert.Len(t, opener.opened, 1)
}

func TestRun_RequiresOpener(t *testing.T) {
	_, err := New(Dependencies{Dir: ".", Scanner: staticScanner{}}).Run(context.Background())
	assert.Error(t, err)
}

func TestOdds_RequiresScanner(t *testing.T) {
	_, _, err := New(Dependencies{Dir: "."}).Odds(context.Background())
	assert.Error(t, err)
}

func TestPick_ScanErrorPassesThrough(t *testing.T) {
	boom := errors.New("permission denied")
	_, err := New(Dependencies{Dir: ".", Scanner: staticScanner{err: boom}}).Pick(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "error", Result(err))
}

func TestPick_InvalidDecay(t *testing.T) {
	_, err := New(Dependencies{
		Dir:     ".",
		Decay:   -1,
		Scanner: staticScanner{docs: []corpus.Document{{Path: "a.pdf", Pages: 1}}},
	}).Pick(context.Background())
	assert.ErrorIs(t, err, sampler.ErrInvalidDecay)
}

func TestResult_OK(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
}
