package wallpapers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/layout"
	"github.com/go-chi/chi/v5"
)

// Mock wallpaper store for testing
type mockWallpaperStore struct {
	wallpapers []core.Wallpaper
	nextID     int
	readErr    error
	writeErr   error
	lastPatch  core.Patch
}

func (m *mockWallpaperStore) Create(ctx context.Context, draft core.Draft) (string, error) {
	w := draft.Wallpaper()
	if err := w.Validate(); err != nil {
		return "", err
	}
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.nextID++
	w.ID = fmt.Sprintf("wp-%d", m.nextID)
	m.wallpapers = append([]core.Wallpaper{w}, m.wallpapers...)
	return w.ID, nil
}

func (m *mockWallpaperStore) ReadAll(ctx context.Context) ([]core.Wallpaper, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([]core.Wallpaper{}, m.wallpapers...), nil
}

func (m *mockWallpaperStore) ReadByID(ctx context.Context, id string) (core.Wallpaper, bool, error) {
	if m.readErr != nil {
		return core.Wallpaper{}, false, m.readErr
	}
	for _, w := range m.wallpapers {
		if w.ID == id {
			return w, true, nil
		}
	}
	return core.Wallpaper{}, false, nil
}

func (m *mockWallpaperStore) Update(ctx context.Context, id string, patch core.Patch) (core.Wallpaper, error) {
	m.lastPatch = patch
	if m.writeErr != nil {
		return core.Wallpaper{}, m.writeErr
	}
	for i, w := range m.wallpapers {
		if w.ID == id {
			m.wallpapers[i] = patch.Apply(w)
			return m.wallpapers[i], nil
		}
	}
	return core.Wallpaper{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
}

func (m *mockWallpaperStore) Delete(ctx context.Context, id string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	kept := m.wallpapers[:0]
	for _, w := range m.wallpapers {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	m.wallpapers = kept
	return nil
}

func seededStore() *mockWallpaperStore {
	return &mockWallpaperStore{wallpapers: []core.Wallpaper{
		{ID: "a", Quote: "Stay calm", FontSize: 20, AspectRatio: "9:16"},
		{ID: "b", Quote: "Breathe", FontSize: 18, AspectRatio: "1:1"},
		{ID: "c", Quote: "Begin", FontSize: 22, AspectRatio: "9:16"},
	}}
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCreate_Success(t *testing.T) {
	store := &mockWallpaperStore{}
	handler := HandleCreate(store)

	body := `{"quote":"Stay calm","fontSize":20,"aspectRatio":"9:16","textPosition":{"x":0.5,"y":0.5}}`
	req := httptest.NewRequest(http.MethodPost, "/api/wallpapers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusCreated)
	}

	var response CreateWallpaperResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.ID != "wp-1" {
		t.Errorf("ID mismatch: got %q, want %q", response.ID, "wp-1")
	}
	if len(store.wallpapers) != 1 {
		t.Errorf("store has %d wallpapers, want 1", len(store.wallpapers))
	}
}

func TestHandleCreate_InvalidJSON(t *testing.T) {
	handler := HandleCreate(&mockWallpaperStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/wallpapers", strings.NewReader("invalid json"))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreate_ValidationError(t *testing.T) {
	handler := HandleCreate(&mockWallpaperStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/wallpapers", strings.NewReader(`{"quote":"  ","fontSize":20}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "quote is required") {
		t.Errorf("error body should explain the failure, got %s", rec.Body.String())
	}
}

func TestHandleCreate_StorageError(t *testing.T) {
	store := &mockWallpaperStore{writeErr: &core.StorageError{Op: "write", Key: "savedWallpapers", Err: errors.New("disk full")}}
	handler := HandleCreate(store)

	req := httptest.NewRequest(http.MethodPost, "/api/wallpapers", strings.NewReader(`{"quote":"q","fontSize":20}`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "disk full") {
		t.Errorf("storage details leaked to client: %s", rec.Body.String())
	}
}

func TestHandleList(t *testing.T) {
	handler := HandleList(seededStore())

	req := httptest.NewRequest(http.MethodGet, "/api/wallpapers", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusOK)
	}
	var list []core.Wallpaper
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(list) != 3 || list[0].ID != "a" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestHandleList_Empty(t *testing.T) {
	handler := HandleList(&mockWallpaperStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/wallpapers", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %s, want []", got)
	}
}

func TestHandleGet(t *testing.T) {
	handler := HandleGet(seededStore())

	rec := httptest.NewRecorder()
	handler(rec, withID(httptest.NewRequest(http.MethodGet, "/api/wallpapers/b", nil), "b"))
	if rec.Code != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusOK)
	}
	var got core.Wallpaper
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.Quote != "Breathe" {
		t.Errorf("Quote mismatch: got %q, want %q", got.Quote, "Breathe")
	}

	rec = httptest.NewRecorder()
	handler(rec, withID(httptest.NewRequest(http.MethodGet, "/api/wallpapers/zzz", nil), "zzz"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleUpdate(t *testing.T) {
	store := seededStore()
	handler := HandleUpdate(store)

	body := `{"id":"hijack","createdAt":1,"quote":"Be still"}`
	req := withID(httptest.NewRequest(http.MethodPatch, "/api/wallpapers/a", strings.NewReader(body)), "a")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusOK)
	}
	var got core.Wallpaper
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.ID != "a" || got.Quote != "Be still" {
		t.Errorf("unexpected update result: %+v", got)
	}
	if store.lastPatch.FontSize != nil {
		t.Error("absent field decoded as a change")
	}
}

func TestHandleUpdate_NotFound(t *testing.T) {
	handler := HandleUpdate(seededStore())

	req := withID(httptest.NewRequest(http.MethodPatch, "/api/wallpapers/zzz", strings.NewReader(`{"quote":"x"}`)), "zzz")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleDelete(t *testing.T) {
	store := seededStore()
	handler := HandleDelete(store)

	for _, id := range []string{"b", "unknown"} {
		rec := httptest.NewRecorder()
		handler(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/wallpapers/"+id, nil), id))
		if rec.Code != http.StatusNoContent {
			t.Errorf("delete %s: status code mismatch: got %d, want %d", id, rec.Code, http.StatusNoContent)
		}
	}
	if len(store.wallpapers) != 2 {
		t.Errorf("store has %d wallpapers, want 2", len(store.wallpapers))
	}
}

func TestHandleLayout(t *testing.T) {
	handler := HandleLayout(seededStore())

	req := httptest.NewRequest(http.MethodGet, "/api/wallpapers/layout", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status code mismatch: got %d, want %d", rec.Code, http.StatusOK)
	}
	var cols layout.Columns
	if err := json.NewDecoder(rec.Body).Decode(&cols); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(cols.Left) != 1 || len(cols.Right) != 2 {
		t.Fatalf("column sizes = %d/%d, want 1/2", len(cols.Left), len(cols.Right))
	}
	if cols.Left[0].Wallpaper.ID != "a" || cols.Right[0].Wallpaper.ID != "b" || cols.Right[1].Wallpaper.ID != "c" {
		t.Errorf("unexpected placement: %+v", cols)
	}
}

func TestHandleLayout_QueryOverrides(t *testing.T) {
	handler := HandleLayout(seededStore(), layout.WithColumnWidth(170))

	req := httptest.NewRequest(http.MethodGet, "/api/wallpapers/layout?columnWidth=200&gap=0", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var cols layout.Columns
	if err := json.NewDecoder(rec.Body).Decode(&cols); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if cols.Left[0].Width != 200 {
		t.Errorf("Width mismatch: got %v, want 200", cols.Left[0].Width)
	}
	if cols.LeftHeight != cols.Left[0].Height {
		t.Errorf("gap not applied: column %v, card %v", cols.LeftHeight, cols.Left[0].Height)
	}
}

func TestHandleLayout_BadQuery(t *testing.T) {
	handler := HandleLayout(seededStore())

	for _, q := range []string{"columnWidth=abc", "columnWidth=-3", "gap=-1", "gap=x"} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/api/wallpapers/layout?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status code mismatch: got %d, want %d", q, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestHandleLayout_StorageError(t *testing.T) {
	handler := HandleLayout(&mockWallpaperStore{readErr: &core.StorageError{Op: "read", Err: errors.New("io")}})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/wallpapers/layout", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status code mismatch: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestHandleAspectRatios(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAspectRatios()(rec, httptest.NewRequest(http.MethodGet, "/api/aspect-ratios", nil))

	var ratios []core.AspectRatio
	if err := json.NewDecoder(rec.Body).Decode(&ratios); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(ratios) != 6 {
		t.Errorf("catalog size mismatch: got %d, want 6", len(ratios))
	}
}
