package pagecount

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// pdfcpu otherwise creates a config dir under the user's home on first use
	api.DisableConfigDir()
}

// PDFCPU counts pages with the pure-Go pdfcpu parser.
type PDFCPU struct {
	conf *model.Configuration
}

// NewPDFCPU returns a pdfcpu counter using relaxed validation, which accepts
// the minor PDF syntax violations common in papers produced by LaTeX toolchains.
// pdfcpu v0.6 cannot locate the xref of files under 512 bytes; such files are
// reported as unreadable ("can't find last xref section"). The fitz backend
// reads them.
func NewPDFCPU() *PDFCPU {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPU{conf: conf}
}

func (p *PDFCPU) Name() string { return BackendPDFCPU }

// PageCount reads and validates the document from r.
func (p *PDFCPU) PageCount(r io.ReadSeeker) (int, error) {
	if r == nil {
		return 0, errors.New("pdf page count failed: nil reader")
	}
	n, err := api.PageCount(r, p.conf)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return n, nil
}
