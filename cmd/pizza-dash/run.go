package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pizzadash/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play in the interactive terminal dashboard",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	w, err := newWorld(cfg)
	if err != nil {
		return err
	}

	dash, err := newDashboard(w)
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer dash.fini()

	if err := w.start(); err != nil {
		return err
	}
	defer w.stop()

	dash.run()
	return nil
}
