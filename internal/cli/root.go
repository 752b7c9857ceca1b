package cli

import (
	"io"
	"os"

	"github.com/felixbrock/monument/internal/app"
	"github.com/felixbrock/monument/internal/config"
	"github.com/felixbrock/monument/internal/logger"
	"github.com/spf13/cobra"
)

var version = "dev"

type Deps struct {
	Components app.ComponentBuilder
	Stderr     io.Writer
}

func NewRootCmd(deps Deps) *cobra.Command {
	var configPath string
	var debug bool

	cmd := &cobra.Command{
		Use:          "monument",
		Short:        "Monument, a lifestyle magazine site",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (env MONUMENT_CONFIG)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	load := func(cmd *cobra.Command) (config.Config, error) {
		path := configPath
		if path == "" {
			path = os.Getenv("MONUMENT_CONFIG")
		}

		cfg, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}

		if cmd.Flags().Changed("debug") {
			cfg.Debug = debug
		}

		logger.Setup(deps.Stderr, logger.Config{Debug: cfg.Debug, Format: cfg.LogFormat})

		return cfg, nil
	}

	cmd.AddCommand(newServeCmd(deps, load))
	cmd.AddCommand(newExportCmd(deps, load))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version)
		},
	}
}
