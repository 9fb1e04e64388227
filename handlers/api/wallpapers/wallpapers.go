package wallpapers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/layout"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies; a composition is a few hundred bytes.
const maxBodyBytes = 1 << 20

type (
	CreateWallpaperResponse struct {
		ID string `json:"id"`
	}

	WallpaperStore interface {
		Create(ctx context.Context, draft core.Draft) (string, error)
		ReadAll(ctx context.Context) ([]core.Wallpaper, error)
		ReadByID(ctx context.Context, id string) (core.Wallpaper, bool, error)
		Update(ctx context.Context, id string, patch core.Patch) (core.Wallpaper, error)
		Delete(ctx context.Context, id string) error
	}
)

// HandleList returns the saved wallpapers, newest first.
func HandleList(store WallpaperStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ReadAll(r.Context())
		if err != nil {
			writeError(w, r, err, "Failed to load wallpapers")
			return
		}
		render.JSON(w, r, list)
	}
}

// HandleCreate saves a new wallpaper and returns its id.
func HandleCreate(store WallpaperStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft core.Draft
		if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &draft); err != nil {
			logrus.WithError(err).Warn("Failed to decode wallpaper")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}

		id, err := store.Create(r.Context(), draft)
		if err != nil {
			writeError(w, r, err, "Failed to save wallpaper")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, CreateWallpaperResponse{ID: id})
	}
}

// HandleGet returns a single wallpaper.
func HandleGet(store WallpaperStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		wallpaper, ok, err := store.ReadByID(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Failed to load wallpaper")
			return
		}
		if !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Wallpaper not found"})
			return
		}
		render.JSON(w, r, wallpaper)
	}
}

// HandleUpdate merges a partial update and returns the result.
func HandleUpdate(store WallpaperStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var patch core.Patch
		if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &patch); err != nil {
			logrus.WithError(err).WithField("wallpaper_id", id).Warn("Failed to decode wallpaper patch")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid request body"})
			return
		}

		updated, err := store.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err, "Failed to update wallpaper")
			return
		}
		render.JSON(w, r, updated)
	}
}

// HandleDelete removes a wallpaper. Unknown ids succeed.
func HandleDelete(store WallpaperStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, r, err, "Failed to delete wallpaper")
			return
		}
		render.NoContent(w, r)
	}
}

// HandleLayout arranges the collection into masonry columns. The
// columnWidth and gap query parameters override the defaults in opts.
func HandleLayout(store WallpaperStore, opts ...layout.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engineOpts := append([]layout.Option(nil), opts...)
		query := r.URL.Query()

		if v := query.Get("columnWidth"); v != "" {
			width, err := strconv.ParseFloat(v, 64)
			if err != nil || width <= 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "columnWidth must be a positive number"})
				return
			}
			engineOpts = append(engineOpts, layout.WithColumnWidth(width))
		}
		if v := query.Get("gap"); v != "" {
			gap, err := strconv.ParseFloat(v, 64)
			if err != nil || gap < 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "gap must be a non-negative number"})
				return
			}
			engineOpts = append(engineOpts, layout.WithGap(gap))
		}

		list, err := store.ReadAll(r.Context())
		if err != nil {
			writeError(w, r, err, "Failed to load wallpapers")
			return
		}
		render.JSON(w, r, layout.New(engineOpts...).Layout(list))
	}
}

// HandleAspectRatios returns the canvas format catalog.
func HandleAspectRatios() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, core.AspectRatios())
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	log := logrus.WithError(err).WithField("path", r.URL.Path)

	switch {
	case errors.Is(err, core.ErrInvalidWallpaper):
		log.Warn(message)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
	case errors.Is(err, core.ErrNotFound):
		log.Warn(message)
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "Wallpaper not found"})
	default:
		log.Error(message)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": message})
	}
}
