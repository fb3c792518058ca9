package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gestao-cli/internal/admin"
	"gestao-cli/internal/config"
	"gestao-cli/internal/crud"
	"gestao-cli/internal/format"
	"gestao-cli/internal/gateway"
	"gestao-cli/internal/logging"
	"gestao-cli/internal/telemetry"
	"gestao-cli/internal/tui"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

type App struct {
	APIURL     string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "gestao",
		Short:         "Console de administração (operações, produtos, tags, usuários)",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  gestao

  # Scriptable commands
  gestao produtos list --preco-max 10 --tag 7
  gestao tags create --nome Promo

  # Direct lookup (shortcut for: gestao produtos show 3)
  gestao produtos 3
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
		cfg, err := config.Load()
		if err != nil {
			return writeErr(cmd, err)
		}
		if app.APIURL != "" {
			cfg.APIURL = app.APIURL
		}
		if app.LogLevel != "" {
			cfg.LogLevel = app.LogLevel
		}
		if app.Format == "" {
			app.Format = cfg.Format
		}
		app.Format = strings.ToLower(strings.TrimSpace(app.Format))
		if err := config.ValidateFormat(app.Format); err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("GESTAO_API_URL", ""), "Base URL of the admin API")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GESTAO_FORMAT", ""), "Output format (table|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("GESTAO_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newEntityCmd(app, operacoesSpec()))
	cmd.AddCommand(newEntityCmd(app, produtosSpec()))
	cmd.AddCommand(newEntityCmd(app, tagsSpec()))
	cmd.AddCommand(newEntityCmd(app, usuariosSpec()))
	cmd.AddCommand(newCategoriasCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

// session is everything one command needs to talk to the API.
type session struct {
	log    zerolog.Logger
	client *gateway.Client
	close  func()
}

func (app *App) open(ctx context.Context, logOpts logging.Options) (*session, error) {
	cfg := app.cfg
	if cfg == nil {
		return nil, fmt.Errorf("configuração não carregada")
	}
	logOpts.Level = cfg.LogLevel
	log, closeLog, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: Version,
	})
	if err != nil {
		log.Warn().Err(err).Msg("telemetry disabled")
		shutdown = func(context.Context) error { return nil }
	}

	client, err := gateway.New(gateway.Config{
		BaseURL:    cfg.APIURL,
		Timeout:    cfg.Timeout,
		RetryCount: cfg.Retries,
		RateLimit:  cfg.RateLimit,
		Burst:      cfg.RateBurst,
		UserAgent:  "gestao-cli/" + Version,
	}, &log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &session{
		log:    log,
		client: client,
		close: func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Debug().Err(err).Msg("telemetry shutdown")
			}
			_ = closeLog()
		},
	}, nil
}

// withAdmin runs fn against a freshly wired admin console. Notices go to
// stderr; deletions ask on stdin unless yes is set.
func (app *App) withAdmin(cmd *cobra.Command, yes bool, fn func(ctx context.Context, a *admin.Admin) error) error {
	ctx := cmd.Context()
	s, err := app.open(ctx, logging.Options{Out: cmd.ErrOrStderr(), Console: true})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.close()

	var confirmer crud.Confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	if yes {
		confirmer = crud.AlwaysConfirm{}
	}
	a := admin.New(s.client.Resources(), crud.Deps{
		Notifier:  newStderrNotifier(cmd.ErrOrStderr()),
		Confirmer: confirmer,
		Logger:    &s.log,
	})
	return fn(ctx, a)
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := app.open(cmd.Context(), logging.Options{File: app.cfg.LogFile})
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.close()

	res := s.client.Resources()
	return tui.Run(cmd.Context(), func(deps crud.Deps) *admin.Admin {
		deps.Logger = &s.log
		return admin.New(res, deps)
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	var r reportedError
	if errors.As(err, &r) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
