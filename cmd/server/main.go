// Package main provides the entry point for the Innovata showcase server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "innovata",
	Short: "Innovata student innovation showcase",
	Long:  "Innovata serves projects, prizes, announcements and presentation formats published from spreadsheets.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
