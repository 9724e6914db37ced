package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospiflow",
		Short: "HospiFlow hospital dashboard API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(policyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
