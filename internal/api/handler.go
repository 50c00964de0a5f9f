package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rigmint/tvl/internal/export"
	"github.com/rigmint/tvl/internal/snapshot"
)

// Handler provides HTTP endpoints for the TVL API.
type Handler struct {
	snapshots *snapshot.Service
}

// NewHandler creates a new API handler.
func NewHandler(snapshots *snapshot.Service) *Handler {
	return &Handler{snapshots: snapshots}
}

// GetLatestReport handles GET /api/v1/tvl/latest.
func (h *Handler) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshots.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no reports found")
			return
		}
		slog.Error("failed to get latest report", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetReportByDate handles GET /api/v1/tvl/{date}.
func (h *Handler) GetReportByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "report not found for date")
			return
		}
		slog.Error("failed to get report by date", "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListReports handles GET /api/v1/tvl.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GenerateReport handles POST /api/v1/tvl/generate.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.snapshots.Generate(r.Context(), time.Now().UTC())
	if err != nil {
		slog.Error("failed to generate report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DownloadWorkbook handles GET /api/v1/tvl/report.xlsx.
func (h *Handler) DownloadWorkbook(w http.ResponseWriter, r *http.Request) {
	const historyLimit = 365
	snaps, err := h.snapshots.List(r.Context(), historyLimit)
	if err != nil {
		slog.Error("failed to list reports for workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	workbook, err := export.BuildWorkbook(export.BuildRows(snaps))
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tvl_report.xlsx"`)
	if err := workbook.Write(w); err != nil {
		slog.Warn("failed to stream workbook", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
