package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gaslamp-games/interrogation/internal/casefile"
	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/logging"
	"github.com/spf13/cobra"
)

var (
	previewSuspect  string
	previewQuestion string
)

func init() {
	previewCmd.Flags().StringVar(&previewSuspect, "suspect", "", "suspect to interrogate")
	previewCmd.Flags().StringVar(&previewQuestion, "question", "", "question to ask")
	_ = previewCmd.MarkFlagRequired("suspect")
	_ = previewCmd.MarkFlagRequired("question")
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the prompt that would be sent to the model",
	Long: `Composes the interrogation prompt for a suspect and question from the data
directory and prints it, without calling the model. Useful for tuning the
template and profile texts.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))
		store := casefile.NewStore(dataDir, logger)

		template, err := store.LoadTemplate()
		if err != nil {
			return errors.Wrap(err, "load template")
		}
		profile := store.LoadProfile(cmd.Context(), previewSuspect)
		prompt := casefile.ComposePrompt(template, previewSuspect, previewQuestion, profile)

		_, err = io.WriteString(cmd.OutOrStdout(), fmt.Sprintln(prompt))
		return err
	},
}
