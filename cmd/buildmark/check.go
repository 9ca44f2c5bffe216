package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"buildmark/internal/gen"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail when the generated object is out of date",
		Long: `check generates in memory and compares the result with the output
directory. When they differ it prints a diff and exits with status 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}

			g := gen.NewGenerator(gen.ConfigFrom(cfg))

			res, err := g.Check(cfg.Options)
			if err != nil {
				return a.fail(err, "generation failed")
			}

			target := filepath.Join(cfg.Output, filepath.FromSlash(g.Path()))

			if !res.Stale {
				a.log.Info().Str("file", target).Msg("up to date")
				return nil
			}

			if res.Diff == "" {
				a.log.Error().Str("dir", cfg.Output).Msg("output directory holds other files")
			} else {
				fmt.Fprintf(a.stdout, "%s (-on disk +generated):\n%s", target, res.Diff)
				a.log.Error().Str("file", target).Msg("out of date")
			}

			return errReported
		},
	}

	a.overrides.register(cmd.Flags())

	return cmd
}
