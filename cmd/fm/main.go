package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/fm/internal/app"
	"github.com/kk-code-lab/fm/internal/config"
	"github.com/kk-code-lab/fm/internal/logging"
)

// NewRootCmd creates the root command.
func NewRootCmd(environ []string) *cobra.Command {
	var opts *config.Options

	rootCmd := &cobra.Command{
		Use:   "fm [DIR]",
		Short: "Terminal directory browser",
		Long: `fm browses one directory at a time in the terminal.

Move with the arrow keys or hjkl, filter with /, create with n (file) or
N (directory), delete with d, rename with r, copy with c. Press ? for help.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config(args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	opts = config.BindFlags(rootCmd.Flags(), environ)
	return rootCmd
}

func run(cfg config.Config) error {
	logger, closer, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	app, err := apppkg.NewApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	logger.WithField("path", app.CurrentPath()).Info("exited")
	return nil
}

func main() {
	// UTF-8 fallback keeps non-ASCII names readable on terminals that
	// report no charset.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := NewRootCmd(config.Environ()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
