package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gaslamp-games/interrogation/internal/casefile"
	"github.com/gaslamp-games/interrogation/internal/errors"
	"github.com/gaslamp-games/interrogation/internal/logging"
	"github.com/sashabaranov/go-openai"
)

const askSystemPrompt = "You are a detective AI assistant. " +
	"Your task is to help generate responses for a character in a murder mystery interrogation."

const askTemperature = 0.7

type askRequest struct {
	Suspect  string `json:"suspect"`
	Question string `json:"question"`
}

type askResponse struct {
	Response string `json:"response"`
}

// ask answers the player's question in the voice of the interrogated suspect.
func (app *application) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Suspect == "" || req.Question == "" {
		app.clientError(w, r, http.StatusBadRequest, "Missing suspect or question")
		return
	}

	ctx := logging.WithAttrs(r.Context(), slog.String("suspect", req.Suspect))
	app.logger.LogAttrs(ctx, slog.LevelInfo, "received question", slog.String("question", req.Question))

	template, err := app.casefiles.LoadTemplate()
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "Error generating response"))
		return
	}
	profile := app.casefiles.LoadProfile(ctx, req.Suspect)
	prompt := casefile.ComposePrompt(template, req.Suspect, req.Question, profile)

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: askSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	answer, err := app.aiClient.CompleteWithRetry(ctx, messages, askTemperature)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "Error generating response"))
		return
	}

	app.logger.LogAttrs(ctx, slog.LevelInfo, "generated response")
	app.writeJSON(w, r, http.StatusOK, askResponse{Response: answer})
}
