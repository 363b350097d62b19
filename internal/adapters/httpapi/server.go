// Package httpapi expone health, métricas y el upload de matches por HTTP.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
	"github.com/jose-valero/fantasy-vct-bot/pkg/logger"
)

// SecretHeader lleva el secreto compartido de los uploads.
const SecretHeader = "X-Upload-Secret"

// Lo implementa *service.League.
type Uploader interface {
	UploadMatch(ctx context.Context, matchID, eventName string) (string, error)
}

type Server struct {
	secret  string
	up      Uploader
	metrics http.Handler
	r       *chi.Mux
	log     zerolog.Logger
}

// New arma las rutas. Sin secret el upload queda deshabilitado (403).
func New(secret string, up Uploader, metrics http.Handler) *Server {
	s := &Server{secret: secret, up: up, metrics: metrics, r: chi.NewRouter(), log: logger.Component("http")}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.r }

func (s *Server) routes() {
	s.r.Use(middleware.RequestID)
	s.r.Use(middleware.Recoverer)
	s.r.Use(s.accessLog)

	s.r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	if s.metrics != nil {
		s.r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	s.r.With(middleware.Timeout(30*time.Second), s.requireSecret).
		Post("/matches/{id}/upload", s.handleUpload)
}

func (s *Server) requireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(SecretHeader)
		if s.secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
			writeJSON(w, http.StatusForbidden, map[string]any{"ok": false, "error": "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	msg, err := s.up.UploadMatch(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("event"))
	if err != nil {
		code := StatusFor(err)
		if code == http.StatusInternalServerError {
			s.log.Error().Err(err).Str("match", chi.URLParam(r, "id")).Msg("upload failed")
		}
		writeJSON(w, code, map[string]any{"ok": false, "error": domain.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": msg})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("req_id", middleware.GetReqID(r.Context())).
			Msg("http")
	})
}

// StatusFor traduce el Kind del error a un código HTTP.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindState, domain.KindCapacity, domain.KindConsistency:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve atiende hasta que ctx termine y después apaga con un margen de 5s.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}
