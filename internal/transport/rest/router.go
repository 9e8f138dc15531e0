// Package rest wires the HTTP surface of the kanji index service.
package rest

import (
	"net/http"
)

// NewRouter builds the route table. Middleware is applied by the caller.
func NewRouter(kanji *KanjiHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /kanji/jlpt/{level}", kanji.ListByLevel)
	mux.HandleFunc("GET /kanji/{character}", kanji.GetKanji)

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	return mux
}
