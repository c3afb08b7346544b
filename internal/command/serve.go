// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/cache"
	"github.com/staranto/linkctl/internal/meta"
	"github.com/staranto/linkctl/internal/output"
)

const shutdownTimeout = 5 * time.Second

// LinksHandler serves the cached link list for the request URI. Lookups are
// serialized because the cache and its random source are single threaded.
type LinksHandler struct {
	Cache  *cache.Cache
	Source string
	Limit  int

	mu sync.Mutex
}

// ServeHTTP renders the links for r.URL.RequestURI(), so every distinct
// path and query gets its own stable sample.
func (h *LinksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	records, err := h.Cache.Get(r.URL.RequestURI(), h.Source, h.Limit)
	h.mu.Unlock()
	if err != nil {
		log.WithError(err).Errorf("failed to get links for %s", r.URL.RequestURI())
		msg := "Internal Server Error"
		if errors.Is(err, cache.ErrSourceMissing) {
			msg = err.Error()
		}
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	// Render fully before writing so a failure leaves no partial output.
	var buf bytes.Buffer
	if err := output.RenderHTML(&buf, records); err != nil {
		log.WithError(err).Error("failed to render links")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// NewRouter mounts the links handler on every GET path except /health.
func NewRouter(h http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/*", h.ServeHTTP)

	return r
}

// ServeCommandAction runs the HTTP server until ctx is cancelled.
func ServeCommandAction(ctx context.Context, cmd *cli.Command) error {
	c, err := BuildCache(ctx, cmd)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: cmd.String("addr"),
		Handler: NewRouter(&LinksHandler{
			Cache:  c,
			Source: cmd.String("source"),
			Limit:  cmd.Int("limit"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("linkctl listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ServeCommandBuilder constructs the cli.Command for "serve".
func ServeCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "serve"
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "listen address",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LINKCTL_ADDR"),
				yaml.YAML("serve.addr", altsrc.StringSourcer(meta.Config.Source)),
			),
			Value: ":8080",
		},
	}
	flags = append(flags, NewLinkFlags(ns, meta.Config.Source)...)

	b := CommandBuilder{
		Name:      ns,
		Usage:     "serve the cached links over HTTP, keyed by request URI",
		UsageText: "linkctl serve [--addr :8080] [--source FILE] [--limit N]",
		Flags:     flags,
		Action:    ServeCommandAction,
		Meta:      meta,
	}
	return b.Build()
}
