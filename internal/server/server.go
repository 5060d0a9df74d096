package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"raspview/internal/config"
	"raspview/internal/logfile"
	"raspview/internal/render"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	reader   *logfile.Reader
	settings atomic.Pointer[config.Settings]
	router   *mux.Router

	html render.Renderer
	json render.Renderer
}

func New(reader *logfile.Reader, settings *config.Settings) *Server {
	s := &Server{
		reader: reader,
		router: mux.NewRouter().StrictSlash(true),
		html:   render.NewHTMLRenderer(),
		json:   render.NewJSONRenderer(),
	}
	s.settings.Store(settings)
	s.routes()
	return s
}

func (s *Server) Router() *mux.Router {
	return s.router
}

// SetSettings replaces the settings used by subsequent requests.
func (s *Server) SetSettings(settings *config.Settings) {
	s.settings.Store(settings)
}

func (s *Server) routes() {
	s.router.Use(requestIDMiddleware)
	s.router.Use(accessLogMiddleware)

	s.router.HandleFunc("/", s.viewLog(s.html, "text/html; charset=utf-8")).Methods(http.MethodGet)
	s.router.HandleFunc("/api/entries", s.viewLog(s.json, "application/json")).Methods(http.MethodGet)
	s.router.HandleFunc("/health", health).Methods(http.MethodGet)
	s.router.Handle("/config", settingsHandler(s)).Methods(http.MethodGet)
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func settingsHandler(s *Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set response headers
		w.Header().Set("Content-Type", "application/json")

		data := config.Describe(s.settings.Load())

		// Return json response
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logrus.Errorf("[server][%s] failed to encode settings: %v", requestID(r), err)
		}
	})
}

// viewLog reads the log file once per request and renders it. The page is
// rendered into a buffer first so a failure can still become a 500.
func (s *Server) viewLog(renderer render.Renderer, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := requestID(r)

		ctx, cancel := context.WithTimeout(r.Context(), s.settings.Load().ReadTimeout)
		defer cancel()

		page, err := s.reader.Read(ctx)
		if err != nil {
			logrus.Errorf("[server][%s] failed to read log file: %v", reqID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, page); err != nil {
			logrus.Errorf("[server][%s] failed to render %s: %v", reqID, page.Path, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if page.Skipped > 0 {
			logrus.Debugf("[server][%s] %d line(s) of %s skipped", reqID, page.Skipped, page.Path)
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
		w.Header().Set("X-Skipped-Lines", strconv.Itoa(page.Skipped))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			logrus.Debugf("[server][%s] failed to write response: %v", reqID, err)
		}
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	settings := s.settings.Load()
	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: settings.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("[server] starting on %s, reading %s", settings.ListenAddr, s.reader.Path())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "listening")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down")
	}
	logrus.Info("[server] HTTP server shut down gracefully")
	return nil
}

