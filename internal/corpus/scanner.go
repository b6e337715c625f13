package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/local/paperpick/internal/filetype"
	"github.com/local/paperpick/internal/pagecount"
)

// Pattern is the glob matched against file names in the scanned directory.
const Pattern = "*.pdf"

// Scanner lists the PDFs of a directory and reads their page counts.
type Scanner struct {
	Counter  pagecount.Counter
	Detector *filetype.Detector
}

// NewScanner creates a scanner using counter for page counts.
func NewScanner(counter pagecount.Counter) *Scanner {
	return &Scanner{Counter: counter, Detector: filetype.New()}
}

// Scan returns one Document per regular, non-hidden file in dir whose name
// matches Pattern, in lexical order. Subdirectories are not descended into.
// The first file that cannot be read fails the scan; nothing is skipped. An
// empty directory yields an empty slice and no error.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Document, error) {
	if s.Counter == nil {
		return nil, errors.New("scanner has no page counter")
	}
	if s.Detector == nil {
		s.Detector = filetype.New()
	}

	paths, err := s.list(dir)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages, err := s.countFile(path)
		if err != nil {
			return nil, &CorpusReadError{Path: path, Err: err}
		}
		if pages <= 0 {
			return nil, &DegenerateWeightError{Path: path, Pages: pages}
		}
		log.Debug().Str("path", path).Int("pages", pages).Str("backend", s.Counter.Name()).Msg("counted pages")
		docs = append(docs, Document{Path: path, Pages: pages})
	}
	return docs, nil
}

func (s *Scanner) list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !matchName(e.Name(), runtime.GOOS) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		// Stat follows symlinks, so a link to a PDF counts as a file
		fi, err := os.Stat(path)
		if err != nil {
			return nil, &CorpusReadError{Path: path, Err: err}
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// matchName applies Pattern the way a shell glob does: hidden files are never
// matched, and on Windows the comparison ignores case like the filesystem.
func matchName(name, goos string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	if goos == "windows" {
		ext := filepath.Ext(name)
		return len(name) > len(ext) && strings.EqualFold(ext, filepath.Ext(Pattern))
	}
	ok, _ := filepath.Match(Pattern, name)
	return ok
}

// countFile holds the handle open only for the duration of one count.
func (s *Scanner) countFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := s.Detector.DetectReader(f)
	if err != nil {
		return 0, err
	}
	if !info.IsPDF() {
		return 0, fmt.Errorf("not a PDF (%s)", info.MIMEType)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return s.Counter.PageCount(f)
}
