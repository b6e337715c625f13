// Package launcher opens a file with the host's default application.
package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
)

// Strategy names one of the closed set of host opener mechanisms.
type Strategy string

const (
	// StrategyOpen is the macOS `open` command.
	StrategyOpen Strategy = "open"
	// StrategyStart is the Windows shell association used by "start",
	// invoked through rundll32 so cmd.exe never parses the path.
	StrategyStart Strategy = "start"
	// StrategyXDGOpen is the freedesktop `xdg-open` command.
	StrategyXDGOpen Strategy = "xdg-open"
)

// Runner executes an external command and waits for it. It returns the
// command's combined output alongside any error.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands through os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Opener hands a path to the host's default application.
type Opener interface {
	Open(ctx context.Context, path string) error
	Strategy() Strategy
	// Available reports whether the opener's binary can be found.
	Available() error
}

// StrategyFor maps a GOOS tag to its strategy.
func StrategyFor(goos string) (Strategy, error) {
	switch goos {
	case "darwin":
		return StrategyOpen, nil
	case "windows":
		return StrategyStart, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return StrategyXDGOpen, nil
	default:
		return "", &UnsupportedPlatformError{GOOS: goos}
	}
}

// For returns the opener for goos. A nil run uses ExecRunner.
func For(goos string, run Runner) (Opener, error) {
	s, err := StrategyFor(goos)
	if err != nil {
		return nil, err
	}
	if run == nil {
		run = ExecRunner
	}
	o := &commandOpener{strategy: s, run: run}
	switch s {
	case StrategyOpen:
		o.bin = "open"
	case StrategyStart:
		o.bin, o.prefix = "rundll32", []string{"url.dll,FileProtocolHandler"}
	case StrategyXDGOpen:
		o.bin = "xdg-open"
	}
	return o, nil
}

// Detect returns the opener for the running host.
func Detect() (Opener, error) {
	return For(runtime.GOOS, nil)
}

type commandOpener struct {
	strategy Strategy
	bin      string
	prefix   []string
	run      Runner
}

func (o *commandOpener) Strategy() Strategy { return o.strategy }

func (o *commandOpener) Available() error {
	if _, err := exec.LookPath(o.bin); err != nil {
		return fmt.Errorf("%s: %w", o.strategy, err)
	}
	return nil
}

// Open runs the opener once. No retry is attempted on failure.
func (o *commandOpener) Open(ctx context.Context, path string) error {
	args := append(append([]string{}, o.prefix...), path)
	log.Debug().Str("strategy", string(o.strategy)).Str("cmd", o.bin+" "+strings.Join(args, " ")).Msg("launching viewer")

	out, err := o.run(ctx, o.bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			log.Error().Str("output", msg).Str("path", path).Msg("opener output")
		}
		return &LauncherError{Path: path, Strategy: o.strategy, Err: err}
	}
	return nil
}
