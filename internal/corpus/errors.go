package corpus

import "fmt"

// CorpusReadError reports a matched file whose page count could not be read:
// unreadable, encrypted, corrupt, or not a PDF despite its extension.
type CorpusReadError struct {
	Path string
	Err  error
}

func (e *CorpusReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *CorpusReadError) Unwrap() error { return e.Err }

// DegenerateWeightError reports a file whose page count cannot be weighted.
type DegenerateWeightError struct {
	Path  string
	Pages int
}

func (e *DegenerateWeightError) Error() string {
	return fmt.Sprintf("degenerate weight: %s reports %d pages", e.Path, e.Pages)
}
