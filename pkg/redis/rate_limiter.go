package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLimitReached is returned by Acquire when a configured limit is exhausted. Any other
// Acquire error means the limiter store itself failed.
var ErrLimitReached = errors.New("rate limit reached")

// RateLimiterRegistry tracks active rate limiters for health check
type RateLimiterRegistry struct {
	limiters map[string]*RateLimiter
	mu       sync.RWMutex
}

var rateLimiterRegistry = &RateLimiterRegistry{
	limiters: make(map[string]*RateLimiter),
}

// RegisterRateLimiter registers a rate limiter with the registry
func (rlr *RateLimiterRegistry) RegisterRateLimiter(limiter *RateLimiter) {
	rlr.mu.Lock()
	defer rlr.mu.Unlock()

	if limiter.opts.CacheName != "" {
		rlr.limiters[limiter.opts.CacheName] = limiter
	}
}

// GetRateLimiterMetrics returns the metrics of all registered rate limiters
func (rlr *RateLimiterRegistry) GetRateLimiterMetrics(ctx context.Context) map[string]map[string]string {
	rlr.mu.RLock()
	defer rlr.mu.RUnlock()

	metrics := make(map[string]map[string]string)
	for cacheName, limiter := range rlr.limiters {
		m, err := limiter.GetMetrics(ctx)
		if err == nil {
			metrics[cacheName] = m
		}
	}
	return metrics
}

// RateLimiterOptions represents options for rate limiting
type RateLimiterOptions struct {
	// MaxActiveTransactions is the maximum number of concurrent active transactions (optional)
	MaxActiveTransactions int
	// MaxTransactionsPerSecond is the maximum number of transactions per second (optional)
	MaxTransactionsPerSecond int
	// MaxTransactionsPerMinute is the maximum number of transactions per minute (optional)
	MaxTransactionsPerMinute int
	// WaitOnLimit indicates whether to wait when limit is reached (true) or return error immediately (false)
	WaitOnLimit bool
	// WaitTimeout is the maximum time to wait when WaitOnLimit is true
	WaitTimeout time.Duration
	// RetryDelay is the delay between attempts when waiting
	RetryDelay time.Duration
	// Namespace is the namespace for organizing rate limiters
	Namespace string
	// CacheName is used for health check identification
	CacheName string
	// TransactionTTL is the maximum time a transaction can be active before auto-release
	TransactionTTL time.Duration
}

// NewRateLimiterOptions creates a new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		WaitTimeout:    2 * time.Second,
		RetryDelay:     100 * time.Millisecond,
		TransactionTTL: 1 * time.Minute,
	}
}

// WithMaxActiveTransactions sets the maximum number of concurrent transactions
func (rlo *RateLimiterOptions) WithMaxActiveTransactions(max int) *RateLimiterOptions {
	rlo.MaxActiveTransactions = max
	return rlo
}

// WithMaxTransactionsPerSecond sets the maximum number of transactions per second
func (rlo *RateLimiterOptions) WithMaxTransactionsPerSecond(max int) *RateLimiterOptions {
	rlo.MaxTransactionsPerSecond = max
	return rlo
}

// WithMaxTransactionsPerMinute sets the maximum number of transactions per minute
func (rlo *RateLimiterOptions) WithMaxTransactionsPerMinute(max int) *RateLimiterOptions {
	rlo.MaxTransactionsPerMinute = max
	return rlo
}

// WithWaitOnLimit sets whether to wait when limit is reached
func (rlo *RateLimiterOptions) WithWaitOnLimit(wait bool) *RateLimiterOptions {
	rlo.WaitOnLimit = wait
	return rlo
}

// WithWaitTimeout sets the maximum time to wait when WaitOnLimit is true
func (rlo *RateLimiterOptions) WithWaitTimeout(timeout time.Duration) *RateLimiterOptions {
	rlo.WaitTimeout = timeout
	return rlo
}

// WithNamespace sets the namespace for organizing rate limiters
func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// WithCacheName sets the cache name for health check identification
func (rlo *RateLimiterOptions) WithCacheName(cacheName string) *RateLimiterOptions {
	rlo.CacheName = cacheName
	return rlo
}

// WithTransactionTTL sets the maximum time a transaction can be active
func (rlo *RateLimiterOptions) WithTransactionTTL(ttl time.Duration) *RateLimiterOptions {
	rlo.TransactionTTL = ttl
	return rlo
}

// Validate validates the rate limiter options
func (rlo *RateLimiterOptions) Validate() error {
	if rlo.MaxActiveTransactions < 0 || rlo.MaxTransactionsPerSecond < 0 || rlo.MaxTransactionsPerMinute < 0 {
		return fmt.Errorf("rate limits must be non-negative")
	}
	if rlo.MaxActiveTransactions == 0 && rlo.MaxTransactionsPerSecond == 0 && rlo.MaxTransactionsPerMinute == 0 {
		return fmt.Errorf("at least one limit must be configured (MaxActiveTransactions, MaxTransactionsPerSecond, or MaxTransactionsPerMinute)")
	}
	if rlo.WaitTimeout < 0 || rlo.RetryDelay < 0 || rlo.TransactionTTL < 0 {
		return fmt.Errorf("rate limiter durations must be non-negative")
	}
	// the active counter expires after twice the TTL in whole seconds, so 0s would drop it at once
	if rlo.MaxActiveTransactions > 0 && rlo.TransactionTTL < time.Second {
		return fmt.Errorf("transaction TTL must be at least 1s when MaxActiveTransactions is set")
	}
	return nil
}

// DefaultRateLimiterOptions returns default rate limiter options
func DefaultRateLimiterOptions() *RateLimiterOptions {
	return NewRateLimiterOptions()
}

// RateLimiter is a distributed sliding window rate limiter shared by every instance
// pointing at the same Redis.
type RateLimiter struct {
	client        *Client
	key           string
	opts          *RateLimiterOptions
	activeKeyName string
	tpsKeyName    string
	tpmKeyName    string
}

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = DefaultRateLimiterOptions()
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		client: client,
		key:    key,
		opts:   opts,
	}

	limiter.activeKeyName = limiter.buildKey("active")
	limiter.tpsKeyName = limiter.buildKey("tps")
	limiter.tpmKeyName = limiter.buildKey("tpm")

	if opts.CacheName != "" {
		rateLimiterRegistry.RegisterRateLimiter(limiter)
	}

	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire attempts to acquire a transaction slot and returns its id
func (rl *RateLimiter) Acquire(ctx context.Context) (string, error) {
	if rl.opts.WaitOnLimit {
		return rl.acquireWithWait(ctx)
	}
	return rl.acquireImmediate(ctx)
}

func (rl *RateLimiter) acquireImmediate(ctx context.Context) (string, error) {
	now := time.Now()
	transactionID := uuid.NewString()

	result, err := rl.client.GetClient().Eval(ctx, acquireScript, []string{
		rl.activeKeyName,
		rl.tpsKeyName,
		rl.tpmKeyName,
	},
		rl.opts.MaxActiveTransactions,
		rl.opts.MaxTransactionsPerSecond,
		rl.opts.MaxTransactionsPerMinute,
		transactionID,
		now.Unix(),
		now.UnixNano(),
		int(rl.opts.TransactionTTL.Seconds()),
	).Int64()
	if err != nil {
		return "", fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	if err = rl.resultError(result); err != nil {
		return "", err
	}
	return transactionID, nil
}

// resultError maps the script result: 1 = success, 0 = active limit, -1 = TPS limit, -2 = TPM limit
func (rl *RateLimiter) resultError(code int64) error {
	switch code {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w: active transactions limit (%d)", ErrLimitReached, rl.opts.MaxActiveTransactions)
	case -1:
		return fmt.Errorf("%w: transactions per second limit (%d TPS)", ErrLimitReached, rl.opts.MaxTransactionsPerSecond)
	case -2:
		return fmt.Errorf("%w: transactions per minute limit (%d TPM)", ErrLimitReached, rl.opts.MaxTransactionsPerMinute)
	default:
		return fmt.Errorf("unknown rate limiter result code: %d", code)
	}
}

// acquireWithWait retries while the limit is reached; store failures return at once
func (rl *RateLimiter) acquireWithWait(ctx context.Context) (string, error) {
	deadline := time.Now().Add(rl.opts.WaitTimeout)

	for {
		transactionID, err := rl.acquireImmediate(ctx)
		if err == nil || !errors.Is(err, ErrLimitReached) {
			return transactionID, err
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("timeout waiting for rate limiter: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(rl.opts.RetryDelay):
		}
	}
}

const acquireScript = `
	local active_key = KEYS[1]
	local tps_key = KEYS[2]
	local tpm_key = KEYS[3]

	local max_active = tonumber(ARGV[1])
	local max_tps = tonumber(ARGV[2])
	local max_tpm = tonumber(ARGV[3])
	local transaction_id = ARGV[4]
	local now_seconds = tonumber(ARGV[5])
	local now_nanos = tonumber(ARGV[6])
	local transaction_ttl = tonumber(ARGV[7])

	if max_active > 0 then
		local active_count = tonumber(redis.call("GET", active_key)) or 0
		if active_count >= max_active then
			return 0
		end
	end

	-- sliding window of 1 second
	if max_tps > 0 then
		local tps_cutoff_time = now_nanos - (1 * 1000000000)
		redis.call("ZREMRANGEBYSCORE", tps_key, "-inf", tps_cutoff_time)
		local tps_count = redis.call("ZCOUNT", tps_key, tps_cutoff_time, "+inf")
		if tps_count >= max_tps then
			return -1
		end
	end

	-- sliding window of 60 seconds
	if max_tpm > 0 then
		local tpm_cutoff_time = now_nanos - (60 * 1000000000)
		redis.call("ZREMRANGEBYSCORE", tpm_key, "-inf", tpm_cutoff_time)
		local tpm_count = redis.call("ZCOUNT", tpm_key, tpm_cutoff_time, "+inf")
		if tpm_count >= max_tpm then
			return -2
		end
	end

	if max_active > 0 then
		redis.call("INCR", active_key)
		redis.call("EXPIRE", active_key, transaction_ttl * 2)
	end

	if max_tps > 0 then
		redis.call("ZADD", tps_key, now_nanos, transaction_id .. ":tps")
		redis.call("EXPIRE", tps_key, 2)
	end

	if max_tpm > 0 then
		redis.call("ZADD", tpm_key, now_nanos, transaction_id)
		redis.call("EXPIRE", tpm_key, 60)
	end

	return 1
`

// Release releases a transaction slot. Only the active counter needs it, the windows expire.
func (rl *RateLimiter) Release(ctx context.Context, transactionID string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	if rl.opts.MaxActiveTransactions > 0 {
		count, err := rl.client.Decr(ctx, rl.activeKeyName)
		if err != nil {
			return fmt.Errorf("failed to release transaction: %w", err)
		}

		if count < 0 {
			_ = rl.client.Set(ctx, rl.activeKeyName, 0, rl.opts.TransactionTTL*2)
		}
	}

	return nil
}

// RateLimiterMetrics represents the current metrics of the rate limiter as key-value pairs
type RateLimiterMetrics map[string]string

// GetMetrics returns the current metrics of the rate limiter
func (rl *RateLimiter) GetMetrics(ctx context.Context) (RateLimiterMetrics, error) {
	metrics := make(RateLimiterMetrics)
	now := time.Now()

	if rl.opts.MaxActiveTransactions > 0 {
		activeCount, err := rl.client.GetInt(ctx, rl.activeKeyName)
		if err != nil {
			return nil, err
		}
		metrics["active_transactions"] = strconv.FormatInt(activeCount, 10)
		metrics["max_active_transactions"] = strconv.Itoa(rl.opts.MaxActiveTransactions)
	}

	if rl.opts.MaxTransactionsPerSecond > 0 {
		tpsCount, err := rl.windowCount(ctx, rl.tpsKeyName, now.Add(-1*time.Second))
		if err != nil {
			return nil, err
		}
		metrics["transactions_per_second"] = strconv.FormatInt(tpsCount, 10)
		metrics["max_transactions_per_second"] = strconv.Itoa(rl.opts.MaxTransactionsPerSecond)
		metrics["tps_utilization"] = utilization(tpsCount, rl.opts.MaxTransactionsPerSecond)
	}

	if rl.opts.MaxTransactionsPerMinute > 0 {
		tpmCount, err := rl.windowCount(ctx, rl.tpmKeyName, now.Add(-60*time.Second))
		if err != nil {
			return nil, err
		}
		metrics["transactions_per_minute"] = strconv.FormatInt(tpmCount, 10)
		metrics["max_transactions_per_minute"] = strconv.Itoa(rl.opts.MaxTransactionsPerMinute)
		metrics["tpm_utilization"] = utilization(tpmCount, rl.opts.MaxTransactionsPerMinute)
	}

	return metrics, nil
}

func (rl *RateLimiter) windowCount(ctx context.Context, key string, since time.Time) (int64, error) {
	return rl.client.GetClient().ZCount(ctx, key, strconv.FormatInt(since.UnixNano(), 10), "+inf").Result()
}

func utilization(count int64, limit int) string {
	return fmt.Sprintf("%.1f%%", float64(count)/float64(limit)*100)
}

// GetRateLimiterMetrics returns the metrics of all registered rate limiters for health check
func GetRateLimiterMetrics(ctx context.Context) map[string]map[string]string {
	return rateLimiterRegistry.GetRateLimiterMetrics(ctx)
}
