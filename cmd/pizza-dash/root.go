package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pizza-dash",
	Short: "Pizza delivery game engine",
	Long: `pizza-dash runs the pizza delivery order engine: orders arrive on a
timer, you accept, bake and deliver them, and earnings buy faster
vehicles and better characters.

The run command opens an interactive terminal dashboard; simulate
plays a headless session; catalog prints the equipment sheet.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./pizzadash.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
