package main

import (
	"log/slog"
	"net/http"
	"strconv"
)

type clueResponse struct {
	Clue string `json:"clue"`
}

// clue reveals the day's clue about a suspect, if any exists.
func (app *application) clue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	suspect := query.Get("suspect")
	day, err := strconv.Atoi(query.Get("day"))
	if err != nil || day <= 0 || suspect == "" {
		app.clientError(w, r, http.StatusBadRequest, "Missing or invalid day or suspect parameter")
		return
	}

	ctx := r.Context()
	app.logger.LogAttrs(ctx, slog.LevelInfo, "loading clue",
		slog.Int("day", day), slog.String("suspect", suspect))

	app.writeJSON(w, r, http.StatusOK, clueResponse{Clue: app.casefiles.LoadClue(ctx, day, suspect)})
}
