package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/paperpick/internal/corpus"
	"github.com/local/paperpick/internal/sampler"
)

func TestRenderOdds_ScenarioA(t *testing.T) {
	groups := corpus.Groups{2: {"a.pdf", "b.pdf"}, 10: {"c.pdf"}}
	table, err := sampler.BuildWeights(groups, 1.0)
	require.NoError(t, err)

	out := renderOdds(groups, table, 1.0)

	assert.Contains(t, out, "p(group)")
	assert.Contains(t, out, "0.9091")
	assert.Contains(t, out, "0.4545")
	assert.Contains(t, out, "0.0909")
	assert.Contains(t, out, "3 files, 2 page counts, decay 1")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	err := report(&buf, []check{
		{name: "scan dir ."},
		{name: "opener", err: errors.New("xdg-open: executable file not found")},
	})

	assert.EqualError(t, err, "1 of 2 checks failed")
	assert.Contains(t, buf.String(), "scan dir .")
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "executable file not found")

	buf.Reset()
	assert.NoError(t, report(&buf, []check{{name: "pdf backend pdfcpu"}}))
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, checkDir(dir))
	assert.Error(t, checkDir(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "f.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, checkDir(file))
}

func TestCheckBackend(t *testing.T) {
	assert.NoError(t, checkBackend("pdfcpu"))
	assert.NoError(t, checkBackend("fitz"))
	assert.Error(t, checkBackend("ghostscript"))
}

func TestNewPicker_UnknownBackend(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()
	cfg.PDF.Backend = "ghostscript"

	_, err := newPicker(nil)
	assert.Error(t, err)
}
