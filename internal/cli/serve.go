package cli

import (
	"os/signal"
	"syscall"

	"github.com/felixbrock/monument/internal/app"
	"github.com/felixbrock/monument/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd(deps Deps, load func(*cobra.Command) (config.Config, error)) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			if port != "" {
				cfg.Port = port
				err = cfg.Validate()
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := app.App{Config: cfg, ComponentBuilder: deps.Components}

			return a.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (env GOPORT)")

	return cmd
}
