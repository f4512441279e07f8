package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"irview/internal/config"
	"irview/internal/explain"
	"irview/internal/server"
	"irview/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port string // overrides PORT from the environment
	DB   string // overrides IRVIEW_DB from the environment
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser-based dump inspector",
		Long: `Start the HTTP server backing the browser UI.

Configuration comes from the environment (and an optional .env file):
PORT, APP_ENV, IRVIEW_DB, IRVIEW_DEBOUNCE_MS, OPENAI_API_KEY. Flags
override the environment.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen address (e.g. :8080)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "path to the saved-dump database")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "loading configuration", err)
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}
	if opts.DB != "" {
		cfg.DBPath = opts.DB
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("opening database %s", cfg.DBPath), err)
	}
	defer st.Close()

	var explainer explain.Explainer = explain.Disabled{}
	if cfg.Explain.Enabled {
		e, err := explain.NewOpenAIExplainer(cfg.Explain.APIKey, cfg.Explain.Model)
		if err != nil {
			return WrapExitError(ExitCommandError, "configuring AI explanations", err)
		}
		explainer = e
	} else {
		slog.Info("AI explanations disabled, serving placeholder responses")
	}

	srv, err := server.New(cfg, st, explainer)
	if err != nil {
		return WrapExitError(ExitCommandError, "assembling server", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	return nil
}
