package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DynaSwap Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all DynaSwap metrics
type Collector struct {
	// Swap metrics
	SwapsTotal     *prometheus.CounterVec
	SwapVolume     *prometheus.CounterVec
	SwapLatency    *prometheus.HistogramVec
	SwapFailures   *prometheus.CounterVec
	CoverageSpread *prometheus.HistogramVec

	// Liquidity metrics
	JoinsTotal    *prometheus.CounterVec
	ExitsTotal    *prometheus.CounterVec
	SharesSupply  *prometheus.GaugeVec
	PoolBalance   *prometheus.GaugeVec
	PoolsActive   prometheus.Gauge
	ExitFeesTotal *prometheus.CounterVec

	// Pricing metrics
	SpotPrice      *prometheus.GaugeVec
	AdjustedWeight *prometheus.GaugeVec

	// Oracle metrics
	OraclePrice     *prometheus.GaugeVec
	OracleRoundAge  *prometheus.GaugeVec
	OracleRounds    *prometheus.CounterVec
	StaleRejections *prometheus.CounterVec

	// WebSocket metrics
	WSConnectionsActive *prometheus.GaugeVec
	WSMessagesTotal     *prometheus.CounterVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge
	BlockTime   *prometheus.HistogramVec
	TxPoolSize  prometheus.Gauge
	PeerCount   prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Swap metrics
	c.SwapsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "swaps",
			Name:      "total",
			Help:      "Total number of swaps executed",
		},
		[]string{"pool_id", "kind"},
	)

	c.SwapVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "swaps",
			Name:      "volume",
			Help:      "Total swap volume in base units of the input token",
		},
		[]string{"pool_id", "token_in"},
	)

	c.SwapLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dynaswap",
			Subsystem: "swaps",
			Name:      "latency_ms",
			Help:      "Swap processing latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"pool_id"},
	)

	c.SwapFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "swaps",
			Name:      "failures_total",
			Help:      "Total swaps rejected, by reason",
		},
		[]string{"pool_id", "reason"},
	)

	c.CoverageSpread = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dynaswap",
			Subsystem: "swaps",
			Name:      "coverage_spread",
			Help:      "Coverage spread multiplier applied to swap quotes",
			Buckets:   []float64{1.0, 1.001, 1.005, 1.01, 1.025, 1.05, 1.1, 1.25},
		},
		[]string{"pool_id"},
	)

	// Liquidity metrics
	c.JoinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "joins_total",
			Help:      "Total pool joins",
		},
		[]string{"pool_id"},
	)

	c.ExitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "exits_total",
			Help:      "Total pool exits",
		},
		[]string{"pool_id"},
	)

	c.SharesSupply = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "shares_supply",
			Help:      "Outstanding pool share supply",
		},
		[]string{"pool_id"},
	)

	c.PoolBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "pool_balance",
			Help:      "Bound token balance held by a pool",
		},
		[]string{"pool_id", "token"},
	)

	c.PoolsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "pools_active",
			Help:      "Number of finalized pools",
		},
	)

	c.ExitFeesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "liquidity",
			Name:      "exit_fees_total",
			Help:      "Total exit fees collected, by token",
		},
		[]string{"pool_id", "token"},
	)

	// Pricing metrics
	c.SpotPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "pricing",
			Name:      "spot_price",
			Help:      "Fee-inclusive spot price of a pair",
		},
		[]string{"pool_id", "token_in", "token_out"},
	)

	c.AdjustedWeight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "pricing",
			Name:      "adjusted_weight",
			Help:      "Oracle-adjusted denormalized weight of a bound token",
		},
		[]string{"pool_id", "token"},
	)

	// Oracle metrics
	c.OraclePrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "oracle",
			Name:      "price",
			Help:      "Latest feed price",
		},
		[]string{"feed_id"},
	)

	c.OracleRoundAge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "oracle",
			Name:      "round_age_seconds",
			Help:      "Age of the latest feed round in seconds",
		},
		[]string{"feed_id"},
	)

	c.OracleRounds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "oracle",
			Name:      "rounds_total",
			Help:      "Total feed rounds submitted",
		},
		[]string{"feed_id"},
	)

	c.StaleRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "oracle",
			Name:      "stale_rejections_total",
			Help:      "Total swaps rejected for stale feed prices",
		},
		[]string{"feed_id"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
		[]string{},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total WebSocket messages sent",
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "websocket",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dynaswap",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"method", "path", "error_type"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dynaswap",
			Subsystem: "api",
			Name:      "rate_limit_hits",
			Help:      "Total rate limit hits",
		},
		[]string{"limit_type"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dynaswap",
			Subsystem: "system",
			Name:      "block_time_ms",
			Help:      "Block time in milliseconds",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000},
		},
		[]string{},
	)

	c.TxPoolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "system",
			Name:      "tx_pool_size",
			Help:      "Transaction pool size",
		},
	)

	c.PeerCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dynaswap",
			Subsystem: "system",
			Name:      "peer_count",
			Help:      "Number of connected peers",
		},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Swap metrics
	prometheus.MustRegister(c.SwapsTotal)
	prometheus.MustRegister(c.SwapVolume)
	prometheus.MustRegister(c.SwapLatency)
	prometheus.MustRegister(c.SwapFailures)
	prometheus.MustRegister(c.CoverageSpread)

	// Liquidity metrics
	prometheus.MustRegister(c.JoinsTotal)
	prometheus.MustRegister(c.ExitsTotal)
	prometheus.MustRegister(c.SharesSupply)
	prometheus.MustRegister(c.PoolBalance)
	prometheus.MustRegister(c.PoolsActive)
	prometheus.MustRegister(c.ExitFeesTotal)

	// Pricing metrics
	prometheus.MustRegister(c.SpotPrice)
	prometheus.MustRegister(c.AdjustedWeight)

	// Oracle metrics
	prometheus.MustRegister(c.OraclePrice)
	prometheus.MustRegister(c.OracleRoundAge)
	prometheus.MustRegister(c.OracleRounds)
	prometheus.MustRegister(c.StaleRejections)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSSubscriptions)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
	prometheus.MustRegister(c.TxPoolSize)
	prometheus.MustRegister(c.PeerCount)
}

// ============ Recording Helpers ============

// RecordSwap records an executed swap
func (c *Collector) RecordSwap(poolID, kind, tokenIn string, volume, spread float64) {
	c.SwapsTotal.WithLabelValues(poolID, kind).Inc()
	c.SwapVolume.WithLabelValues(poolID, tokenIn).Add(volume)
	c.CoverageSpread.WithLabelValues(poolID).Observe(spread)
}

// RecordSwapFailure records a rejected swap
func (c *Collector) RecordSwapFailure(poolID, reason string) {
	c.SwapFailures.WithLabelValues(poolID, reason).Inc()
}

// RecordSwapLatency records swap processing latency
func (c *Collector) RecordSwapLatency(poolID string, latencyMs float64) {
	c.SwapLatency.WithLabelValues(poolID).Observe(latencyMs)
}

// RecordJoin records a pool join
func (c *Collector) RecordJoin(poolID string) {
	c.JoinsTotal.WithLabelValues(poolID).Inc()
}

// RecordExit records a pool exit
func (c *Collector) RecordExit(poolID string) {
	c.ExitsTotal.WithLabelValues(poolID).Inc()
}

// RecordPoolState records a pool's balance and supply snapshot
func (c *Collector) RecordPoolState(poolID, token string, balance, supply float64) {
	c.PoolBalance.WithLabelValues(poolID, token).Set(balance)
	c.SharesSupply.WithLabelValues(poolID).Set(supply)
}

// RecordSpotPrice records the current spot price of a pair
func (c *Collector) RecordSpotPrice(poolID, tokenIn, tokenOut string, price float64) {
	c.SpotPrice.WithLabelValues(poolID, tokenIn, tokenOut).Set(price)
}

// RecordOracleRound records a submitted feed round
func (c *Collector) RecordOracleRound(feedID string, price float64) {
	c.OracleRounds.WithLabelValues(feedID).Inc()
	c.OraclePrice.WithLabelValues(feedID).Set(price)
}

// RecordStaleRejection records a swap rejected for a stale feed
func (c *Collector) RecordStaleRejection(feedID string) {
	c.StaleRejections.WithLabelValues(feedID).Inc()
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.WithLabelValues().Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, txPoolSize int, peerCount int) {
	c.BlockHeight.Set(float64(blockHeight))
	c.TxPoolSize.Set(float64(txPoolSize))
	c.PeerCount.Set(float64(peerCount))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
