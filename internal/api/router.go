package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/luowen/coinsight/internal/api/handlers"
	"github.com/luowen/coinsight/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	marketHandler *handlers.MarketHandler,
	advisorHandler *handlers.AdvisorHandler,
	watchlistHandler *handlers.WatchlistHandler,
	portfolioHandler *handlers.PortfolioHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Market data endpoints
	api.HandleFunc("/market/top", marketHandler.GetTop).Methods("GET")
	api.HandleFunc("/market/global", marketHandler.GetGlobalMetrics).Methods("GET")
	api.HandleFunc("/market/quote/{symbol}", marketHandler.GetQuote).Methods("GET")
	api.HandleFunc("/market/history/{symbol}", marketHandler.GetHistory).Methods("GET")

	// Investment analysis endpoints
	api.HandleFunc("/investment/analyze/{symbol}", advisorHandler.Analyze).Methods("GET")
	api.HandleFunc("/investment/opportunities", advisorHandler.Opportunities).Methods("GET")

	// Watchlist endpoints
	api.HandleFunc("/watchlist", watchlistHandler.List).Methods("GET")
	api.HandleFunc("/watchlist", watchlistHandler.Add).Methods("POST")

	// Portfolio endpoints
	api.HandleFunc("/portfolio", portfolioHandler.List).Methods("GET")
	api.HandleFunc("/portfolio", portfolioHandler.Add).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "coinsight-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
