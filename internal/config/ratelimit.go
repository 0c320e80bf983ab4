package config

import "time"

// RateLimitConfig configures the Redis token bucket.  Plan generation
// calls the external allocator, so it gets its own, smaller bucket.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // "ip", "ip_route" or "ip_user_route"
	Prefix         string
	Debug          bool

	GenerateCapacity int // bucket size for POST /v1/seating/generate
}

func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:          envBool("RATE_LIMIT_ENABLED", true),
		Capacity:         envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:     envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval:   envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:              envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:      envStr("RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:           envStr("RATE_LIMIT_PREFIX", "rl"),
		Debug:            envBool("RATE_LIMIT_DEBUG", false),
		GenerateCapacity: envInt("RATE_LIMIT_GENERATE_CAPACITY", 5),
	}
	return cfg.normalized()
}

func (c RateLimitConfig) normalized() RateLimitConfig {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.GenerateCapacity < 1 {
		c.GenerateCapacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	// a key must outlive a full refill or idle clients reset early
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}

// WithCapacity returns a copy of c using a different bucket size.
func (c RateLimitConfig) WithCapacity(n int) RateLimitConfig {
	c.Capacity = n
	return c.normalized()
}

// WithPrefix returns a copy of c whose keys live under prefix, so two
// buckets never share state.
func (c RateLimitConfig) WithPrefix(prefix string) RateLimitConfig {
	c.Prefix = prefix
	return c
}
