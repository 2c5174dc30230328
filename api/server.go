package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dynaswap/dynaswap/api/middleware"
	"github.com/dynaswap/dynaswap/api/types"
	"github.com/dynaswap/dynaswap/api/websocket"
	"github.com/dynaswap/dynaswap/metrics"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	hub        *websocket.Hub
	config     *Config
	mockMode   bool

	// Services
	poolService types.PoolService
	feedService types.FeedService

	// Mock service drives the websocket price channels when no chain is
	// attached
	mock *MockService

	// Rate limiter
	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // For testing purposes
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MockMode:     false,
	}
}

// NewServer creates a new API server backed by the mock service
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	mockService := NewMockService()
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	return &Server{
		config:      config,
		hub:         websocket.NewHub(websocket.DefaultHubConfig()),
		mockMode:    true,
		poolService: mockService,
		feedService: mockService,
		mock:        mockService,
		rateLimiter: rateLimiter,
	}
}

// NewServerWithServices creates a new API server with custom services
func NewServerWithServices(config *Config, poolSvc types.PoolService, feedSvc types.FeedService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimitConfig())

	return &Server{
		config:      config,
		hub:         websocket.NewHub(websocket.DefaultHubConfig()),
		mockMode:    config.MockMode,
		poolService: poolSvc,
		feedService: feedSvc,
		rateLimiter: rateLimiter,
	}
}

// handler builds the full middleware-wrapped route tree
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()

	// Health check (support both /health and /v1/health for compatibility)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	// Pool endpoints (read-only)
	mux.HandleFunc("/v1/pools", s.handlePools)
	mux.HandleFunc("/v1/pools/", s.handlePool)

	// Price feed endpoints (read-only)
	mux.HandleFunc("/v1/feeds", s.handleFeeds)
	mux.HandleFunc("/v1/feeds/", s.handleFeed)

	// WebSocket
	mux.HandleFunc("/ws", s.hub.ServeWS)

	// Prometheus metrics
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain: CORS -> RateLimit -> Handler
	if s.config.DisableRateLimit {
		return corsMiddleware(metricsMiddleware(mux))
	}
	return corsMiddleware(
		middleware.RateLimitMiddleware(s.rateLimiter)(metricsMiddleware(mux)),
	)
}

// Start starts the API server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	// Start WebSocket hub
	go s.hub.Run()

	// In mock mode, walk the feed prices so subscribers see live rounds
	if s.mock != nil {
		go s.runMockPriceWalk()
	}

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Hub returns the websocket hub for external broadcasters
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

// runMockPriceWalk advances the mock feeds and broadcasts the new rounds
func (s *Server) runMockPriceWalk() {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		feeds, err := s.feedService.ListFeeds(context.Background())
		if err != nil {
			continue
		}
		decimals := make(map[string]uint8, len(feeds.Feeds))
		for _, feed := range feeds.Feeds {
			decimals[feed.FeedID] = feed.Decimals
		}

		for feedID, round := range s.mock.StepPrices() {
			s.hub.UpdatePrice(feedID, &websocket.PriceMessage{
				FeedID:    feedID,
				RoundID:   round.RoundID,
				Price:     round.Price,
				Decimals:  decimals[feedID],
				Timestamp: round.Timestamp,
			})
			if price, err := strconv.ParseFloat(round.Price, 64); err == nil {
				metrics.GetCollector().RecordOracleRound(feedID, price)
			}
		}
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "chain"
	if s.mockMode {
		mode = "mock"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"mode":      mode,
	})
}

// handlePools handles /v1/pools
func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp, err := s.poolService.ListPools(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePool handles /v1/pools/{id}/* endpoints
func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	// Parse path: /v1/pools/{id} or /v1/pools/{id}/{endpoint}
	path := r.URL.Path[len("/v1/pools/"):]

	idPart := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			idPart = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	poolID, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pool id")
		return
	}

	switch endpoint {
	case "":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		pool, err := s.poolService.GetPool(r.Context(), poolID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, pool)

	case "spot-price":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		tokenIn := r.URL.Query().Get("token_in")
		tokenOut := r.URL.Query().Get("token_out")
		if tokenIn == "" || tokenOut == "" {
			writeError(w, http.StatusBadRequest, "token_in and token_out are required")
			return
		}
		price, err := s.poolService.GetSpotPrice(r.Context(), poolID, tokenIn, tokenOut)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, price)

	case "quote":
		s.handleQuote(w, r, poolID)

	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// handleQuote handles /v1/pools/{id}/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request, poolID uint64) {
	var req types.QuoteRequest

	switch r.Method {
	case http.MethodGet:
		req.TokenIn = r.URL.Query().Get("token_in")
		req.AmountIn = r.URL.Query().Get("amount_in")
		req.TokenOut = r.URL.Query().Get("token_out")
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	req.PoolID = poolID

	if req.TokenIn == "" || req.TokenOut == "" || req.AmountIn == "" {
		writeError(w, http.StatusBadRequest, "token_in, token_out and amount_in are required")
		return
	}

	quote, err := s.poolService.Quote(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// handleFeeds handles /v1/feeds
func (s *Server) handleFeeds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp, err := s.feedService.ListFeeds(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleFeed handles /v1/feeds/{id}/* endpoints
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse path: /v1/feeds/{id} or /v1/feeds/{id}/{endpoint}
	path := r.URL.Path[len("/v1/feeds/"):]

	feedID := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			feedID = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	if feedID == "" {
		writeError(w, http.StatusBadRequest, "Feed ID required")
		return
	}

	switch endpoint {
	case "":
		feed, err := s.feedService.GetFeed(r.Context(), feedID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, feed)

	case "rounds":
		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, _ = strconv.Atoi(l)
		}
		rounds, err := s.feedService.GetRounds(r.Context(), feedID, limit)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rounds)

	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Websocket upgrades need the raw ResponseWriter
		if r.URL.Path == "/ws" {
			next.ServeHTTP(w, r)
			return
		}

		timer := metrics.NewTimer()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.GetCollector().RecordAPIRequest(r.Method, r.URL.Path, strconv.Itoa(rec.status), timer.ElapsedMs())
	})
}
