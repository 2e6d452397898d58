package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wcpredict/internal/client/config"
	"github.com/dmitrijs2005/wcpredict/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the wcpredict command. Flags override the config file,
// which overrides the defaults.
func NewRootCmd() *cobra.Command {
	flags := &config.Flags{}

	cmd := &cobra.Command{
		Use:   "wcpredict",
		Short: "wcpredict - World Cup prediction game client",
		Long: `wcpredict is an interactive client for the World Cup prediction game.

Run 'wcpredict' to start the REPL, then type 'help' for commands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), flags)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
			ctx := cmd.Context()
			logger.Debug(ctx, "config loaded", "api", cfg.APIBaseURL, "ephemeral", cfg.Ephemeral, "session", cfg.SessionName)

			app, err := NewApp(ctx, cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return app.Run(ctx)
		},
	}

	config.BindFlags(cmd.Flags(), flags)
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
