// Package websocket pushes wallpaper collection changes to connected
// clients over socket.io.
package websocket

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/Ranger10sam/Serenify-App/core"
	"github.com/Ranger10sam/Serenify-App/wallpapers"
	"github.com/sirupsen/logrus"
	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"
)

const (
	// EventChanged is emitted to every client after a mutation.
	EventChanged = "wallpapers-changed"
	// EventFetch asks for the current collection; the reply goes to the ack
	// callback, or as EventSnapshot when the client sent none.
	EventFetch    = "fetch-wallpapers"
	EventSnapshot = "wallpapers-snapshot"

	galleryRoom socketio.Room = "gallery"
)

type (
	// Lister reads the current collection.
	Lister interface {
		ReadAll(ctx context.Context) ([]core.Wallpaper, error)
	}

	// Feed is a socket.io server broadcasting wallpaper changes. It implements
	// wallpapers.Observer.
	Feed struct {
		srv    *socketio.Server
		lister Lister

		mu      sync.Mutex
		clients int
	}

	ackFunc func(payload map[string]any)
)

var localhostOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1|\[::1\])(:\d+)?$`)

// NewFeed creates the socket.io server. Only loopback and desktop-shell
// origins may connect.
func NewFeed(lister Lister) *Feed {
	opts := socketio.DefaultServerOptions()
	opts.SetMaxHttpBufferSize(1 << 20)
	opts.SetPath("/socket.io")
	opts.SetCors(&types.Cors{
		Origin: []any{
			"tauri://localhost",
			localhostOrigin,
		},
		Credentials: true,
	})

	f := &Feed{
		srv:    socketio.NewServer(nil, opts),
		lister: lister,
	}

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	f.srv.On("connection", func(clients ...any) {
		socket, ok := clients[0].(*socketio.Socket)
		if !ok {
			return
		}
		f.attach(socket)
	})
	return f
}

// Server exposes the underlying socket.io server for mounting.
func (f *Feed) Server() *socketio.Server {
	return f.srv
}

// Clients returns the number of connected clients.
func (f *Feed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clients
}

// WallpaperChanged broadcasts ev to every connected client.
func (f *Feed) WallpaperChanged(ctx context.Context, ev wallpapers.Event) {
	log := logrus.WithFields(logrus.Fields{
		"event":        ev.Type,
		"wallpaper_id": ev.ID,
	})
	if err := f.srv.To(galleryRoom).Emit(EventChanged, changeMessage(ev)); err != nil {
		log.WithError(err).Warn("Failed to broadcast wallpaper change")
		return
	}
	log.Debug("Wallpaper change broadcast")
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.srv.Close(nil)
}

func (f *Feed) attach(socket *socketio.Socket) {
	me := socket.Id()
	socket.Join(galleryRoom)
	f.track(1)
	logrus.WithField("socket_id", me).Debug("Client joined gallery feed")

	//nolint:errcheck // Socket.IO event handlers do not return useful errors
	socket.On(EventFetch, func(datas ...any) {
		ack := extractAck(datas)
		payload := f.snapshot(context.Background())
		if ack != nil {
			ack(payload)
			return
		}
		_ = socket.Emit(EventSnapshot, payload)
	})

	socket.On("disconnecting", func(datas ...any) {
		f.track(-1)
		logrus.WithField("socket_id", me).Debug("Client left gallery feed")
	})

	socket.On("disconnect", func(datas ...any) {
		socket.RemoveAllListeners("")
	})
}

func (f *Feed) track(delta int) {
	f.mu.Lock()
	f.clients = max(f.clients+delta, 0)
	f.mu.Unlock()
}

func (f *Feed) snapshot(ctx context.Context) map[string]any {
	if f.lister == nil {
		return map[string]any{"status": "error", "error": "collection unavailable"}
	}
	list, err := f.lister.ReadAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to load wallpapers for feed")
		return map[string]any{"status": "error", "error": "failed to load wallpapers"}
	}
	return map[string]any{"status": "ok", "wallpapers": list}
}

func changeMessage(ev wallpapers.Event) map[string]any {
	return map[string]any{
		"type": string(ev.Type),
		"id":   ev.ID,
		"at":   ev.At,
	}
}

// extractAck returns the trailing acknowledgement callback, if the client
// sent one. Callbacks arrive with varying signatures, so the call goes
// through reflection.
func extractAck(datas []any) ackFunc {
	if len(datas) == 0 {
		return nil
	}
	fn := reflect.ValueOf(datas[len(datas)-1])
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil
	}

	typ := fn.Type()
	return func(payload map[string]any) {
		args := make([]reflect.Value, typ.NumIn())
		for i := range args {
			var v any
			switch {
			case typ.NumIn() == 1 || i == 1:
				v = payload
			case i == 0:
				// Leading error slot in (err, payload) callbacks.
				v = nil
			}
			args[i] = coerce(v, typ.In(i))
		}
		fn.Call(args)
	}
}

func coerce(value any, target reflect.Type) reflect.Value {
	if value == nil {
		return reflect.Zero(target)
	}
	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(target):
		return rv
	case rv.Type().ConvertibleTo(target):
		return rv.Convert(target)
	case target.Kind() == reflect.Interface && target.NumMethod() == 0:
		return rv
	case target.Kind() == reflect.String:
		return reflect.ValueOf(fmt.Sprint(value)).Convert(target)
	case target.Kind() == reflect.Map && target.Key().Kind() == reflect.String:
		if m, ok := value.(map[string]any); ok {
			return coerceMap(m, target)
		}
	}
	return reflect.Zero(target)
}

// coerceMap copies src into a map of the target type. Entries whose value
// does not fit the element type are dropped.
func coerceMap(src map[string]any, target reflect.Type) reflect.Value {
	out := reflect.MakeMapWithSize(target, len(src))
	elem := target.Elem()
	for k, v := range src {
		rv := reflect.ValueOf(v)
		switch {
		case !rv.IsValid():
			rv = reflect.Zero(elem)
		case rv.Type().AssignableTo(elem):
		case elem.Kind() == reflect.String && rv.Kind() != reflect.String:
			// Numbers convert to runes, not digits.
			continue
		case rv.Type().ConvertibleTo(elem):
			rv = rv.Convert(elem)
		default:
			continue
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(target.Key()), rv)
	}
	return out
}
