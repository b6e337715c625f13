// Package pagecount reads the number of pages of a PDF from an open handle.
package pagecount

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Backend names accepted by New.
const (
	BackendPDFCPU = "pdfcpu"
	BackendFitz   = "fitz"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown pdf backend")

// Counter returns the page count of the PDF readable from r. It fails when the
// content is not a valid, parseable PDF. Implementations must not close r.
type Counter interface {
	PageCount(r io.ReadSeeker) (int, error)
	Name() string
}

// New returns the Counter for backend. An empty name selects pdfcpu.
func New(backend string) (Counter, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendPDFCPU:
		return NewPDFCPU(), nil
	case BackendFitz, "mupdf":
		return NewFitz(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
