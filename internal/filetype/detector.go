package filetype

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

const pdfMIME = "application/pdf"

// FileTypeInfo contains detected file type information
type FileTypeInfo struct {
	MIMEType    string
	Extension   string
	Description string
}

// IsPDF reports whether the magic bytes identified a PDF document.
func (i *FileTypeInfo) IsPDF() bool {
	return i != nil && i.MIMEType == pdfMIME
}

// Detector handles file type detection using magic bytes
type Detector struct{}

// New creates a new file type detector
func New() *Detector {
	return &Detector{}
}

// DetectReader sniffs the header of r. The caller is responsible for
// rewinding r if it is read again afterwards.
func (d *Detector) DetectReader(r io.Reader) (*FileTypeInfo, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	info := d.describe(mtype)
	log.Debug().Str("mime", info.MIMEType).Msg("detected file type")
	return info, nil
}

func (d *Detector) describe(mtype *mimetype.MIME) *FileTypeInfo {
	info := &FileTypeInfo{
		MIMEType:  mtype.String(),
		Extension: mtype.Extension(),
	}
	// mimetype may append parameters (e.g. charset) to text types
	if mtype.Is(pdfMIME) {
		info.MIMEType = pdfMIME
		info.Description = "PDF document"
		return info
	}
	info.Description = fmt.Sprintf("Unsupported file type: %s", info.MIMEType)
	return info
}
