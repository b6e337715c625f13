package launcher

import "fmt"

// UnsupportedPlatformError is returned when no opener strategy exists for the host.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: no default opener for %q", e.GOOS)
}

// LauncherError wraps the OS failure to open a file. Err is the unmodified
// error from the opener command.
type LauncherError struct {
	Path     string
	Strategy Strategy
	Err      error
}

func (e *LauncherError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Strategy, e.Path, e.Err)
}

func (e *LauncherError) Unwrap() error { return e.Err }
