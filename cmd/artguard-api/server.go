package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"artguard/internal/domain"
	"artguard/internal/imagesource"
	splitsvc "artguard/internal/services/split"
)

type server struct {
	splits  domain.SplitService
	patches domain.PatchService
	log     *slog.Logger
	maxBody int64
}

func newServer(splits domain.SplitService, patches domain.PatchService, logger *slog.Logger) *server {
	return &server{
		splits:  splits,
		patches: patches,
		log:     logger,
		maxBody: imagesource.DefaultMaxBytes,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /splits", s.handleSplits)
	mux.HandleFunc("POST /patches", s.handlePatches)
	return s.accessLog(mux)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type splitRequest struct {
	Items []domain.DatasetItem `json:"items"`
	domain.SplitConfig
}

type splitResponse struct {
	Assignment domain.FoldAssignment   `json:"assignment"`
	Folds      map[int]domain.SplitSet `json:"folds"`
}

func (s *server) handleSplits(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req := splitRequest{SplitConfig: splitsvc.DefaultConfig()}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if err := domain.ValidateItems(req.Items); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	assignment, folds, err := s.splits.Compute(r.Context(), req.Items, req.SplitConfig)
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration), errors.Is(err, domain.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Error("split failed", "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, splitResponse{Assignment: assignment, Folds: folds})
}

func (s *server) handlePatches(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	imageID := r.URL.Query().Get("image_id")
	if imageID == "" {
		imageID = uuid.NewString()
	}

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	img, _, err := imagesource.Decode(b)
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, fmt.Errorf("decoding image: %w", err))
		return
	}

	records, err := s.patches.ProcessImage(r.Context(), imageID, img)
	switch {
	case errors.Is(err, domain.ErrImageTooSmall):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		s.log.Error("patch failed", "image_id", imageID, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"image_id": imageID, "patches": records})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusRecorder captures the status and body size for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration", time.Since(start),
		)
	})
}
