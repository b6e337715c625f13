package pagecount

import (
	"errors"
	"fmt"
	"io"

	"github.com/gen2brain/go-fitz"
)

// Fitz counts pages with MuPDF through go-fitz (no external tools needed).
type Fitz struct{}

// NewFitz creates a go-fitz based counter
func NewFitz() *Fitz {
	return &Fitz{}
}

func (f *Fitz) Name() string { return BackendFitz }

// PageCount returns the number of pages in the PDF read from r.
func (f *Fitz) PageCount(r io.ReadSeeker) (int, error) {
	if r == nil {
		return 0, errors.New("failed to open PDF: nil reader")
	}
	doc, err := fitz.NewFromReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	return doc.NumPage(), nil
}
