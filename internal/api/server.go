package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/rigmint/tvl/internal/snapshot"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, snapshots *snapshot.Service, adminAPIKey string) *http.Server {
	handler := NewHandler(snapshots)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/tvl/latest", handler.GetLatestReport)
	mux.HandleFunc("GET /api/v1/tvl/report.xlsx", handler.DownloadWorkbook)
	mux.HandleFunc("GET /api/v1/tvl/{date}", handler.GetReportByDate)
	mux.HandleFunc("GET /api/v1/tvl", handler.ListReports)

	generateHandler := http.HandlerFunc(handler.GenerateReport)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/tvl/generate", requireAuth(adminAPIKey, generateHandler))
	} else {
		mux.Handle("POST /api/v1/tvl/generate", generateHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
