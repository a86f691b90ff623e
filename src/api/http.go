package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	Router  *chi.Mux
	fetcher Fetcher
	sugar   *zap.SugaredLogger
}

func NewServer(fetcher Fetcher, sugar *zap.SugaredLogger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(sugar))
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, fetcher: fetcher, sugar: sugar}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			sugar.Warnf("Error writing health check response: %s", err)
		}
	})
	r.Get("/api/pokemon", s.getPokemon)
	r.Get("/api/pokemon/{id}", s.getPokemon)
	return s
}

func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	request, err := ParseRequest(id, r.URL.Query().Get("revalidate"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	result, err := s.fetcher.FetchPokemon(r.Context(), request)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Cache-Control", cacheControl(request))
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	if status == http.StatusInternalServerError {
		s.sugar.Errorf("Unexpected error: %s", err)
	}
	s.writeJSON(w, status, ErrorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.sugar.Warnf("Error writing response: %s", err)
	}
}

func requestLogger(sugar *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				sugar.Infow("Handled request",
					"requestId", chimw.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration", time.Since(start))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
