package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ranger10sam/Serenify-App/core"
	quotesapi "github.com/Ranger10sam/Serenify-App/handlers/api/quotes"
	settingsapi "github.com/Ranger10sam/Serenify-App/handlers/api/settings"
	wallpapersapi "github.com/Ranger10sam/Serenify-App/handlers/api/wallpapers"
	"github.com/Ranger10sam/Serenify-App/handlers/websocket"
	"github.com/Ranger10sam/Serenify-App/layout"
	authMiddleware "github.com/Ranger10sam/Serenify-App/middleware"
	"github.com/Ranger10sam/Serenify-App/quotes"
	"github.com/Ranger10sam/Serenify-App/settings"
	"github.com/Ranger10sam/Serenify-App/wallpapers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

type services struct {
	wallpapers *wallpapers.Store
	settings   *settings.Service
	quotes     *quotes.Provider
	auth       *authMiddleware.Authenticator
	feed       *websocket.Feed
	layout     []layout.Option
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the socket.io change feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.ListenAddress, _ = cmd.Flags().GetString("listen")
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("listen", "", "address to listen on (default from SERENIFY_LISTEN)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	kv, release, err := a.kv()
	if err != nil {
		return err
	}
	defer release()

	svc, err := a.buildServices(kv)
	if err != nil {
		return err
	}
	defer svc.feed.Close()

	r := setupRouter(svc)
	r.Handle("/socket.io/", svc.feed.Server().ServeHandler(nil))

	srv := &http.Server{
		Addr:              a.cfg.ListenAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logrus.WithField("addr", a.cfg.ListenAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			logrus.WithField("event", "start server").WithError(err).Error("Server failed")
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *app) buildServices(kv core.KeyValueStore) (*services, error) {
	provider, err := quotes.New()
	if err != nil {
		return nil, err
	}

	svc := &services{
		settings: settings.NewService(kv),
		quotes:   provider,
		auth:     authMiddleware.NewAuthenticator(a.cfg.APISecret),
		layout:   []layout.Option{layout.WithColumnWidth(a.cfg.ColumnWidth)},
	}

	svc.wallpapers = wallpapers.NewStore(kv)
	svc.feed = websocket.NewFeed(svc.wallpapers)
	svc.wallpapers.Observe(svc.feed)

	if !svc.auth.Enabled() {
		logrus.Warn("SERENIFY_API_SECRET is not set, mutating routes are unauthenticated")
	}
	return svc, nil
}

func setupRouter(svc *services) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(authMiddleware.LocalCORS())
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(r chi.Router) {
		r.Get("/aspect-ratios", wallpapersapi.HandleAspectRatios())

		r.Route("/wallpapers", func(r chi.Router) {
			r.Get("/", wallpapersapi.HandleList(svc.wallpapers))
			r.Get("/layout", wallpapersapi.HandleLayout(svc.wallpapers, svc.layout...))
			r.Get("/{id}", wallpapersapi.HandleGet(svc.wallpapers))

			r.Group(func(r chi.Router) {
				r.Use(svc.auth.RequireToken)
				r.Post("/", wallpapersapi.HandleCreate(svc.wallpapers))
				r.Patch("/{id}", wallpapersapi.HandleUpdate(svc.wallpapers))
				r.Delete("/{id}", wallpapersapi.HandleDelete(svc.wallpapers))
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", quotesapi.HandleSearch(svc.quotes))
			r.Get("/random", quotesapi.HandleRandom(svc.quotes))
			r.Get("/categories", quotesapi.HandleCategories(svc.quotes))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/theme", settingsapi.HandleGetTheme(svc.settings))
			r.Get("/quotes", settingsapi.HandleGetQuoteTexts(svc.settings))
			r.Get("/font", settingsapi.HandleGetIndex(svc.settings.Font))
			r.Get("/palette", settingsapi.HandleGetIndex(svc.settings.Palette))

			r.Group(func(r chi.Router) {
				r.Use(svc.auth.RequireToken)
				r.Put("/theme", settingsapi.HandlePutTheme(svc.settings))
				r.Put("/quotes", settingsapi.HandlePutQuoteTexts(svc.settings))
				r.Put("/font", settingsapi.HandlePutIndex(svc.settings.SetFont))
				r.Put("/palette", settingsapi.HandlePutIndex(svc.settings.SetPalette))
			})
		})
	})

	return r
}
