package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tuanvng/kanjidex/internal/domain"
	"github.com/tuanvng/kanjidex/internal/index"
)

// kanjiService is the consumer-defined interface over the index service.
type kanjiService interface {
	GetPage(ctx context.Context, level string, page, size int) (*index.Page, error)
	GetKanji(ctx context.Context, character string) (*domain.Record, error)
}

// KanjiHandler serves the kanji listing and lookup endpoints.
type KanjiHandler struct {
	svc kanjiService
	log *slog.Logger
}

// NewKanjiHandler creates a KanjiHandler.
func NewKanjiHandler(svc kanjiService, log *slog.Logger) *KanjiHandler {
	return &KanjiHandler{svc: svc, log: log}
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// ListByLevel handles GET /kanji/jlpt/{level}?page={p}&size={s}.
func (h *KanjiHandler) ListByLevel(w http.ResponseWriter, r *http.Request) {
	level := r.PathValue("level")
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 0)

	result, err := h.svc.GetPage(r.Context(), level, page, size)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetKanji handles GET /kanji/{character}.
func (h *KanjiHandler) GetKanji(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetKanji(r.Context(), r.PathValue("character"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeError maps domain errors onto HTTP statuses: validation errors are
// the client's fault, a missing record is 404 (and not logged as an
// error), everything else is a 500.
func (h *KanjiHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "kanji not found"})
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
