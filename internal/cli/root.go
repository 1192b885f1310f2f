package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prompt-gallery/internal/config"
	"prompt-gallery/internal/format"
	"prompt-gallery/internal/logging"
	"prompt-gallery/internal/mutate"
	"prompt-gallery/internal/remote"
	"prompt-gallery/internal/store"
	"prompt-gallery/internal/tui"
)

type App struct {
	ConfigPath string
	Endpoint   string
	Timeout    string
	Format     string
	PrettyJSON bool
	LogFile    string
	Debug      bool
	Password   string

	cfg      *config.Config
	log      *zap.Logger
	closeLog func()
}

// Execute runs the command line in args. The log sink is flushed and closed whether or
// not the command fails.
func Execute(ctx context.Context, args []string) error {
	cmd, app := newRootCmd()
	defer app.close()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *App) {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "gallery",
		Short:         "Prompt gallery TUI + CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive gallery
  gallery --endpoint https://script.example.com/macros/s/abc/exec

  # Same, shorthand
  gallery https://script.example.com/macros/s/abc/exec

  # Scriptable commands
  gallery items list --category c1 --format text
  gallery items add --prompt "a lighthouse at dusk" --image-file ./dusk.png --password ...

  # Local stand-in backend
  gallery dev-backend --addr 127.0.0.1:8787
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("GALLERY_CONFIG", ""), "Path to config.yaml (default: ~/.prompt-gallery/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Endpoint, "endpoint", "", "Backend URL (overrides config and "+config.EnvEndpoint+")")
	cmd.PersistentFlags().StringVar(&app.Timeout, "timeout", "", "Per-request timeout, e.g. 30s")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GALLERY_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Debug logging")

	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newUploadCmd(app))
	cmd.AddCommand(newDevBackendCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd, app
}

func (app *App) close() {
	if app.closeLog != nil {
		app.closeLog()
		app.closeLog = nil
	}
}

// setup loads the configuration, applies flag overrides and builds the logger.
// The TUI owns the terminal, so only subcommands log to stderr.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := strings.TrimSpace(app.Timeout); v != "" {
		cfg.Timeout = v
	}
	if v := strings.TrimSpace(app.LogFile); v != "" {
		cfg.LogFile = v
	}
	if app.Debug {
		cfg.Debug = true
	}
	app.cfg = cfg

	log, closeLog, err := logging.New(logging.Options{
		File:        cfg.LogFile,
		Debug:       cfg.Debug,
		Console:     cmd.HasParent(),
		ConsoleInfo: cmd.Name() == "dev-backend",
	})
	if err != nil {
		return writeErr(cmd, fmt.Errorf("open log: %w", err))
	}
	app.log = log
	app.closeLog = closeLog
	return nil
}

func (app *App) logger() *zap.Logger {
	if app.log == nil {
		return zap.NewNop()
	}
	return app.log
}

func (app *App) config() *config.Config {
	if app.cfg == nil {
		return config.DefaultConfig()
	}
	return app.cfg
}

// client validates the configuration and returns a Remote Client for it.
func (app *App) client() (*remote.Client, error) {
	cfg := app.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return remote.New(cfg.Endpoint,
		remote.WithTimeout(cfg.GetTimeout()),
		remote.WithLogger(app.logger()),
	)
}

// coordinator wires a fresh store and a stderr notifier to the configured backend.
func (app *App) coordinator(cmd *cobra.Command) (*mutate.Coordinator, error) {
	c, err := app.client()
	if err != nil {
		return nil, err
	}
	n := newStderrNotifier(cmd.ErrOrStderr(), app.logger())
	return mutate.New(c, store.New(), n,
		mutate.WithLogger(app.logger()),
		mutate.WithClock(time.Now),
	), nil
}

// requireAdmin applies the same shared-password gate the gallery UI uses for its admin
// controls. It is not access control.
func (app *App) requireAdmin() error {
	ui := store.NewUIState()
	if !ui.Login(app.Password, app.config().AdminSecret) {
		return adminRequiredError{configured: app.config().AdminSecret != ""}
	}
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	c, err := app.client()
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(cmd.Context(), c, tui.Options{
		Endpoint:    c.Endpoint(),
		AdminSecret: app.config().AdminSecret,
		Log:         app.logger(),
	})
}

func addPasswordFlag(cmd *cobra.Command, app *App) {
	cmd.Flags().StringVar(&app.Password, "password", envOr("GALLERY_ADMIN_PASSWORD", ""), "Admin password (must match the configured admin secret)")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps JSON output in a {"data": ...} envelope. Text output renders v directly.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if strings.EqualFold(strings.TrimSpace(app.Format), "text") {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
