// Command paperpick opens a random PDF from a folder, favoring short papers.
package main

import (
    "context"
    "fmt"
    "os"
    "os/signal"
    "syscall"

    "github.com/joho/godotenv"
    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    cfgpkg "github.com/local/paperpick/internal/config"
    "github.com/local/paperpick/internal/corpus"
    "github.com/local/paperpick/internal/launcher"
    logpkg "github.com/local/paperpick/internal/logger"
    "github.com/local/paperpick/internal/metrics"
    "github.com/local/paperpick/internal/pagecount"
    "github.com/local/paperpick/internal/picker"
)

var cfg cfgpkg.Config

var rootCmd = &cobra.Command{
    Use:           "paperpick",
    Short:         "Open a random PDF paper, favoring short ones",
    Long:          "Scans the configured folder for PDFs and opens one at random with the default viewer. The chance of a paper being picked falls with its page count.",
    Args:          cobra.NoArgs,
    SilenceUsage:  true,
    SilenceErrors: true,
    RunE:          runPick,
}

func main() {
    // Load .env file if it exists
    _ = godotenv.Load()
    cfg = cfgpkg.FromEnv()

    _ = logpkg.Init(logpkg.Options{
        Level:        cfg.Logging.Level,
        Pretty:       cfg.Logging.Pretty,
        File:         cfg.Logging.File,
        MaxSizeMB:    cfg.Logging.MaxSizeMB,
        MaxBackups:   cfg.Logging.MaxBackups,
        MaxAgeDays:   cfg.Logging.MaxAgeDays,
        Compress:     cfg.Logging.Compress,
        SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
        AxiomAPIKey:  cfg.Axiom.APIKey,
        AxiomOrgID:   cfg.Axiom.OrgID,
        AxiomDataset: cfg.Axiom.Dataset,
        AxiomFlush:   cfg.Axiom.FlushInterval,
    })
    metrics.Init()

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    err := rootCmd.ExecuteContext(ctx)
    stop()

    if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
        log.Warn().Err(werr).Str("file", cfg.Metrics.Textfile).Msg("failed to write metrics textfile")
    }
    logpkg.Close()

    if err != nil {
        fmt.Fprintf(os.Stderr, "Error: %v\n", err)
        os.Exit(1)
    }
}

func runPick(cmd *cobra.Command, _ []string) error {
    opener, err := launcher.Detect()
    if err != nil {
        return err
    }
    p, err := newPicker(opener)
    if err != nil {
        return err
    }
    sel, err := p.Run(cmd.Context())
    if err != nil {
        return err
    }
    fmt.Fprintln(cmd.OutOrStdout(), sel.Path)
    return nil
}

// newPicker wires the pipeline from the loaded configuration.
func newPicker(opener launcher.Opener) (*picker.Picker, error) {
    counter, err := pagecount.New(cfg.PDF.Backend)
    if err != nil {
        return nil, err
    }
    return picker.New(picker.Dependencies{
        Dir:     cfg.Picker.Dir,
        Decay:   cfg.Picker.Decay,
        Scanner: corpus.NewScanner(counter),
        Opener:  opener,
    }), nil
}
