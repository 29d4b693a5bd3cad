package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:  "interrogation-cli",
	Long: `Command line utilities for authoring and validating the interrogation game's data files.`,
}

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "path to the game data directory")
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(previewCmd)
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
