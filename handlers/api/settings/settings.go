package settings

import (
	"context"
	"errors"
	"net/http"

	"github.com/Ranger10sam/Serenify-App/settings"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 64 << 10

type (
	ThemeRequest struct {
		Mode settings.ThemeMode `json:"mode"`
	}

	QuoteTextsRequest struct {
		Quotes []string `json:"quotes"`
	}

	IndexRequest struct {
		Index *int `json:"index"`
	}

	SettingsStore interface {
		Theme(ctx context.Context) (settings.ThemeMode, error)
		SetTheme(ctx context.Context, mode settings.ThemeMode) error
		QuoteTexts(ctx context.Context) ([]string, error)
		SetQuoteTexts(ctx context.Context, texts []string) error
		Font(ctx context.Context) (int, error)
		SetFont(ctx context.Context, index int) error
		Palette(ctx context.Context) (int, error)
		SetPalette(ctx context.Context, index int) error
	}
)

func HandleGetTheme(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := store.Theme(r.Context())
		if err != nil {
			writeError(w, r, err, "Failed to load theme")
			return
		}
		render.JSON(w, r, ThemeRequest{Mode: mode})
	}
}

func HandlePutTheme(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ThemeRequest
		if !decode(w, r, &req) {
			return
		}
		if err := store.SetTheme(r.Context(), req.Mode); err != nil {
			writeError(w, r, err, "Failed to save theme")
			return
		}
		render.JSON(w, r, req)
	}
}

func HandleGetQuoteTexts(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		texts, err := store.QuoteTexts(r.Context())
		if err != nil {
			writeError(w, r, err, "Failed to load quotes")
			return
		}
		render.JSON(w, r, QuoteTextsRequest{Quotes: texts})
	}
}

func HandlePutQuoteTexts(store SettingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuoteTextsRequest
		if !decode(w, r, &req) {
			return
		}
		if err := store.SetQuoteTexts(r.Context(), req.Quotes); err != nil {
			writeError(w, r, err, "Failed to save quotes")
			return
		}
		HandleGetQuoteTexts(store)(w, r)
	}
}

// HandleGetIndex serves a selection index read by get.
func HandleGetIndex(get func(context.Context) (int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := get(r.Context())
		if err != nil {
			writeError(w, r, err, "Failed to load selection")
			return
		}
		render.JSON(w, r, IndexRequest{Index: &index})
	}
}

// HandlePutIndex stores a selection index with set.
func HandlePutIndex(set func(context.Context, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IndexRequest
		if !decode(w, r, &req) {
			return
		}
		if req.Index == nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "index is required"})
			return
		}
		if err := set(r.Context(), *req.Index); err != nil {
			writeError(w, r, err, "Failed to save selection")
			return
		}
		render.JSON(w, r, req)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), v); err != nil {
		logrus.WithError(err).WithField("path", r.URL.Path).Warn("Failed to decode setting")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log := logrus.WithError(err).WithField("path", r.URL.Path)
	if errors.Is(err, settings.ErrInvalidSetting) {
		log.Warn(message)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	log.Error(message)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]string{"error": message})
}
