package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"buildmark/internal/config"
	"buildmark/internal/gen"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.kt",
		Short: "Print the configuration a generated object was made from",
		Long: `inspect reads a Kotlin file written by generate and prints a
buildmark.yaml that generates it again, with a tag on every option whose
kind plain YAML would not give.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := gen.ParseModule(src, args[0])
			if err != nil {
				return err
			}

			out, err := config.EncodeYAML(cfg)
			if err != nil {
				return err
			}

			a.log.Debug().Str("file", args[0]).Int("options", len(cfg.Options)).Msg("inspected")

			_, err = fmt.Fprint(a.stdout, string(out))

			return err
		},
	}
}
