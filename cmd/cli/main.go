package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bclaudel/paname/cmd/cli/dataset"
)

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(dataset.Group)
	rootCmd.AddCommand(dataset.Build)
	rootCmd.AddCommand(dataset.Stats)
}

var rootCmd = &cobra.Command{
	Use:  "paname",
	Long: `Command line utilities for Paname https://github.com/bclaudel/paname`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
