// Package pdftest builds small, valid PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// minSize keeps every fixture above pdfcpu's 512 byte lower bound.
const minSize = 640

// Build returns a minimal PDF with the given number of blank US-letter pages
// and a correct cross-reference table. pages must be >= 1.
func Build(pages int) []byte {
	if pages < 1 {
		pages = 1
	}

	// objects: 1 catalog, 2 page tree, 3.. pages
	objs := make([]string, 0, pages+2)
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /Resources << >> >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	// pdfcpu looks for the trailer in a fixed-size tail window and cannot
	// read files shorter than that, so pad with comment lines
	for buf.Len() < minSize {
		buf.WriteString("%" + strings.Repeat("-", 62) + "\n")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// Write stores a Build(pages) document as dir/name and returns its path.
func Write(tb testing.TB, dir, name string, pages int) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages), 0o644); err != nil {
		tb.Fatalf("write pdf fixture %s: %v", path, err)
	}
	return path
}

// WriteRaw stores arbitrary bytes as dir/name, for corrupt or mislabeled fixtures.
func WriteRaw(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}
