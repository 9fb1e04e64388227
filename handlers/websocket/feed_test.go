package websocket

import (
	"context"
	"errors"
	"testing"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/wallpapers"
)

type stubLister struct {
	list []core.Wallpaper
	err  error
}

func (s stubLister) ReadAll(ctx context.Context) ([]core.Wallpaper, error) {
	return s.list, s.err
}

func TestNewFeed(t *testing.T) {
	feed := NewFeed(stubLister{})
	defer feed.Close()

	if feed.Server() == nil {
		t.Fatal("NewFeed() returned no server")
	}
	if feed.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", feed.Clients())
	}
}

func TestWallpaperChanged_NoClients(t *testing.T) {
	feed := NewFeed(stubLister{})
	defer feed.Close()

	// Broadcasting to an empty room must not fail or block.
	feed.WallpaperChanged(context.Background(), wallpapers.Event{Type: wallpapers.EventCreate, ID: "x", At: 1})
}

func TestFeed_ImplementsObserver(t *testing.T) {
	var _ wallpapers.Observer = (*Feed)(nil)
}

func TestTrack_NeverNegative(t *testing.T) {
	feed := &Feed{}
	feed.track(1)
	feed.track(-1)
	feed.track(-1)

	if feed.Clients() != 0 {
		t.Errorf("Clients() = %d, want 0", feed.Clients())
	}
}

func TestChangeMessage(t *testing.T) {
	msg := changeMessage(wallpapers.Event{Type: wallpapers.EventUpdate, ID: "01HZ", At: 1700000000000})

	if msg["type"] != "update" || msg["id"] != "01HZ" || msg["at"] != int64(1700000000000) {
		t.Errorf("unexpected message: %v", msg)
	}
}

func TestSnapshot(t *testing.T) {
	ok := (&Feed{lister: stubLister{list: []core.Wallpaper{{ID: "a"}}}}).snapshot(context.Background())
	if ok["status"] != "ok" {
		t.Errorf("status = %v, want ok", ok["status"])
	}
	if list, _ := ok["wallpapers"].([]core.Wallpaper); len(list) != 1 {
		t.Errorf("wallpapers = %v, want one record", ok["wallpapers"])
	}

	failed := (&Feed{lister: stubLister{err: errors.New("io")}}).snapshot(context.Background())
	if failed["status"] != "error" {
		t.Errorf("status = %v, want error", failed["status"])
	}
}

func TestExtractAck(t *testing.T) {
	if extractAck(nil) != nil {
		t.Error("extractAck(nil) should be nil")
	}
	if extractAck([]any{"not a func"}) != nil {
		t.Error("extractAck(non-func) should be nil")
	}

	var single map[string]any
	extractAck([]any{func(p map[string]any) { single = p }})(map[string]any{"status": "ok"})
	if single["status"] != "ok" {
		t.Errorf("single-arg ack got %v", single)
	}

	var gotErr error
	var pair any
	extractAck([]any{"arg", func(err error, p any) { gotErr, pair = err, p }})(map[string]any{"status": "ok"})
	if gotErr != nil {
		t.Errorf("ack error = %v, want nil", gotErr)
	}
	if p, _ := pair.(map[string]any); p["status"] != "ok" {
		t.Errorf("two-arg ack payload = %v", pair)
	}
}

func TestExtractAck_TypedMaps(t *testing.T) {
	payload := map[string]any{
		"status":     "ok",
		"wallpapers": []core.Wallpaper{{ID: "a"}},
		"count":      1,
	}

	var strs map[string]string
	extractAck([]any{func(p map[string]string) { strs = p }})(payload)
	if strs == nil {
		t.Fatal("map[string]string ack received a nil map")
	}
	if strs["status"] != "ok" {
		t.Errorf("status = %q, want %q", strs["status"], "ok")
	}
	if _, ok := strs["wallpapers"]; ok {
		t.Errorf("non-string entry should be dropped, got %q", strs["wallpapers"])
	}
	if _, ok := strs["count"]; ok {
		t.Errorf("numeric entry should be dropped, got %q", strs["count"])
	}

	type snapshot map[string]any
	var gotErr error
	var named snapshot
	extractAck([]any{func(err error, p snapshot) { gotErr, named = err, p }})(payload)
	if gotErr != nil {
		t.Errorf("ack error = %v, want nil", gotErr)
	}
	if named["status"] != "ok" {
		t.Errorf("named map ack got %v", named)
	}
	if list, _ := named["wallpapers"].([]core.Wallpaper); len(list) != 1 {
		t.Errorf("wallpapers entry lost: %v", named["wallpapers"])
	}
}
