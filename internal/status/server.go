// Package status serves a read-only view of the window manager over HTTP.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ItsNotGoodName/x-stackwm/internal/wm"
	"github.com/ItsNotGoodName/x-stackwm/pkg/chiext"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type StackingOutput struct {
	Body []wm.ObjectInfo
}

type WorkspacesOutput struct {
	Body Workspaces
}

type FocusOutput struct {
	Body Focus
}

// NewRouter returns the status routes backed by store. Metrics are gathered
// from gatherer.
func NewRouter(store *Store, gatherer prometheus.Gatherer, version string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	api := humachi.New(r, huma.DefaultConfig("x-stackwm", version))

	huma.Register(api, huma.Operation{
		OperationID: "get-stacking",
		Method:      http.MethodGet,
		Path:        "/v1/stacking",
		Summary:     "Stacking order, bottom to top",
		Tags:        []string{"status"},
	}, func(ctx context.Context, input *struct{}) (*StackingOutput, error) {
		return &StackingOutput{Body: store.Stacking()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-workspaces",
		Method:      http.MethodGet,
		Path:        "/v1/workspaces",
		Summary:     "Workspace layout and the active workspace",
		Tags:        []string{"status"},
	}, func(ctx context.Context, input *struct{}) (*WorkspacesOutput, error) {
		return &WorkspacesOutput{Body: store.Workspaces()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-focus",
		Method:      http.MethodGet,
		Path:        "/v1/focus",
		Summary:     "Focused object",
		Tags:        []string{"status"},
	}, func(ctx context.Context, input *struct{}) (*FocusOutput, error) {
		return &FocusOutput{Body: store.Focus()}, nil
	})

	return r
}

type Server struct {
	address string
	handler http.Handler
}

func NewServer(address string, handler http.Handler) Server {
	return Server{
		address: address,
		handler: handler,
	}
}

func (s Server) String() string {
	return "status.Server"
}

func (s Server) Serve(ctx context.Context) error {
	slog := slog.With("func", "status.Server.Serve", "address", s.address)

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() { errC <- srv.ListenAndServe() }()
	slog.Info("Listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Shutdown failed", "error", err)
		}
		return ctx.Err()
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
