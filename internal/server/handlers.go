package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ktuncer/wastewise/internal/analytics"
	"github.com/ktuncer/wastewise/internal/menu"
	"github.com/ktuncer/wastewise/internal/models"
	"github.com/ktuncer/wastewise/internal/orchestrator"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"state": s.orch.State().String()})
}

// handleUpload accepts a multipart batch of tray photos plus a day
// value and runs the full upload/classify/refresh cycle.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	day, err := models.ParseDayKey(r.FormValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be yyyy-mm-dd or a weekday name")
		return
	}

	var photos []orchestrator.Photo
	for _, header := range r.MultipartForm.File["photos"] {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable photo "+header.Filename)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable photo "+header.Filename)
			return
		}
		photos = append(photos, orchestrator.Photo{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result, err := s.orch.Submit(r.Context(), photos, day)
	switch {
	case errors.Is(err, orchestrator.ErrNoPhotos):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, orchestrator.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil && result == nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "upload complete",
		"uploaded_urls": result.UploadedRefs,
		"failed":        result.Failed(),
	})
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.ListAnalysisRecords(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if day := r.URL.Query().Get("photo_day"); day != "" {
		norm := models.NormalizeToken(day)
		filtered := records[:0]
		for _, record := range records {
			if models.NormalizeToken(record.PhotoDay) == norm {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}
	if records == nil {
		records = []models.AnalysisRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.DeleteAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "analysis results cleared"})
}

// handleDashboardSummary serves the unscoped totals, or one category's
// totals when ?category= names a known slug.
func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := models.NormalizeCategory(raw)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "unknown category "+raw)
			return
		}
		bucket, err := s.engine.CategorySummary(r.Context(), category)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, bucket)
		return
	}

	bucket, err := s.engine.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bucket)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	recommendation, err := s.optimizer.Recommend(r.Context())
	if errors.Is(err, menu.ErrInsufficientData) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recommendation)
}

func (s *Server) handleWeekTable(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be yyyy-mm-dd")
			return
		}
		ref = parsed
	}
	days, err := s.engine.Week(r.Context(), ref, analytics.MatchAny)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.engine.WeeklyByDay(r.Context(), analytics.MatchWeekday)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleMonthlyStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be numeric")
			return
		}
		year = parsed
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			writeError(w, http.StatusBadRequest, "month must be 1-12")
			return
		}
		month = time.Month(parsed)
	}
	split, err := s.engine.Month(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, split)
}

func (s *Server) handleTypeStats(w http.ResponseWriter, r *http.Request) {
	category := models.NormalizeCategory(r.URL.Query().Get("category"))
	if !category.Valid() {
		writeError(w, http.StatusBadRequest, "category must be one of the known slugs")
		return
	}
	ratios, err := s.engine.TypeRatios(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if ratios == nil {
		ratios = []analytics.TypeRatio{}
	}
	writeJSON(w, http.StatusOK, ratios)
}

func (s *Server) handlePhotos(w http.ResponseWriter, r *http.Request) {
	if s.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "photo storage is not configured")
		return
	}
	photos, err := s.photos.ListPhotos(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, photos)
}
