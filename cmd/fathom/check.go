package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fathom/internal/codec"
	"fathom/internal/driver"
	"fathom/internal/ir"
	"fathom/internal/vars"
)

var (
	checkOKColor   = color.New(color.FgGreen, color.Bold)
	checkFailColor = color.New(color.FgRed, color.Bold)
)

var checkCmd = &cobra.Command{
	Use:   "check <snapshot.mp>...",
	Short: "Type-check CFG snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		start, err := cfg.Analysis.FactoryStart()
		if err != nil {
			return err
		}

		// Each snapshot gets its own factory: the graphs are disjoint, so
		// CheckAll may process them in parallel.
		graphs := make([]*ir.CFG, len(args))
		for i, path := range args {
			g, err := codec.ReadFile(path, vars.NewFactoryFrom(start))
			if err != nil {
				return err
			}
			if cfg.Analysis.Simplify {
				g.Simplify()
			}
			graphs[i] = g
		}

		if err := driver.CheckAll(cmd.Context(), graphs); err != nil {
			fmt.Printf("%s %v\n", checkFailColor.Sprint("FAIL"), err)
			return fmt.Errorf("type checking failed")
		}
		for _, path := range args {
			fmt.Printf("%s %s\n", checkOKColor.Sprint("ok"), path)
		}
		return nil
	},
}
