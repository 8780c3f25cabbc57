package main

import (
	"os"

	"github.com/spf13/cobra"

	"fathom/internal/codec"
	"fathom/internal/config"
	"fathom/internal/vars"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <snapshot.mp>",
	Short: "Print the text rendering of a CFG snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		start, err := cfg.Analysis.FactoryStart()
		if err != nil {
			return err
		}

		g, err := codec.ReadFile(args[0], vars.NewFactoryFrom(start))
		if err != nil {
			return err
		}

		simplify, _ := cmd.Flags().GetBool("simplify")
		if simplify {
			g.Simplify()
		}
		g.Write(os.Stdout)
		return nil
	},
}

func init() {
	dumpCmd.Flags().Bool("simplify", false, "simplify the CFG before printing")
}

// loadManifest reads the --config manifest, or returns defaults when the
// flag is unset.
func loadManifest(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil || path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
