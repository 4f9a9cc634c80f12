// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package mcpserver

import (
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles MCP tool calls with one token bucket per tool.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewRateLimiter allows burst calls per tool and refills refillRate tokens
// per second. For example, NewRateLimiter(10, 1.0) allows 10 burst calls and
// refills 1 token per second. A non-positive refillRate disables limiting.
func NewRateLimiter(burst int, refillRate float64) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(refillRate),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (r *RateLimiter) limiter(toolName string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[toolName]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[toolName] = l
	}
	return l
}

// Allow returns true if a call to toolName is allowed, consuming one token.
func (r *RateLimiter) Allow(toolName string) bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	return r.limiter(toolName).Allow()
}

// CheckRateLimit checks the rate limiter and returns an error if the limit is exceeded.
func (r *RateLimiter) CheckRateLimit(toolName string) error {
	if !r.Allow(toolName) {
		return fmt.Errorf("rate limit exceeded for tool %q, please wait before retrying", toolName)
	}
	return nil
}
