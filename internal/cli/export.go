package cli

import (
	"github.com/felixbrock/monument/internal/config"
	"github.com/felixbrock/monument/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(deps Deps, load func(*cobra.Command) (config.Config, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the rendered site to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}

			if out != "" {
				cfg.ExportDir = out
			}

			return export.Export(cmd.Context(), cfg.ExportDir, deps.Components, cfg.Title)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (env MONUMENT_EXPORT_DIR)")

	return cmd
}
