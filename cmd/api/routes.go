package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/ask", app.ask)
	mux.HandleFunc("GET /api/clue", app.clue)
	mux.HandleFunc("GET /health", app.health)

	common := alice.New(app.recoverPanic, app.logRequest, corsHeaders)

	return common.Then(mux)
}
