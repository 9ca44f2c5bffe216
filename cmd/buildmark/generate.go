package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"buildmark/internal/config"
	"buildmark/internal/gen"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Kotlin object",
		Long: `generate loads the configuration and replaces the output directory with
the generated object. An output that is already up to date is not touched,
and nothing is written when any option fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}

			return a.generate(cfg)
		},
	}

	a.overrides.register(cmd.Flags())

	return cmd
}

func (a *app) generate(cfg *config.Config) error {
	g := gen.NewGenerator(gen.ConfigFrom(cfg))

	changed, err := g.Run(cfg.Options)
	if err != nil {
		return a.fail(err, "generation failed")
	}

	target := filepath.Join(cfg.Output, filepath.FromSlash(g.Path()))

	if !changed {
		a.log.Info().Str("file", target).Msg("up to date")
		return nil
	}

	a.log.Info().Str("file", target).Int("options", len(cfg.Options)).Msg("generated")

	return nil
}
