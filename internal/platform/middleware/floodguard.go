// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/condominio/condoadmin/internal/platform/apperr"
	"github.com/condominio/condoadmin/internal/platform/constants"
	requestutil "github.com/condominio/condoadmin/internal/platform/request"
	"github.com/condominio/condoadmin/internal/platform/respond"
)

// # Flood Guard

type floodClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// FloodGuard is a per-IP token bucket in front of the whole router. It only
// absorbs bursts; the bucketed sliding-window limits are enforced by the
// security pipeline.
type FloodGuard struct {
	mu      sync.Mutex
	clients map[string]*floodClient
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

// NewFloodGuard creates a guard allowing rps requests per second per IP.
func NewFloodGuard(rps float64, burst int) *FloodGuard {
	return &FloodGuard{
		clients: make(map[string]*floodClient),
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     constants.FloodGuardClientTTL,
	}
}

// Run evicts idle clients until ctx is cancelled.
func (guard *FloodGuard) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.FloodGuardCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			guard.evictIdle(time.Now())
		case <-ctx.Done():
			return
		}
	}
}

func (guard *FloodGuard) evictIdle(now time.Time) {
	guard.mu.Lock()
	defer guard.mu.Unlock()

	for ip, client := range guard.clients {
		if now.Sub(client.lastSeen) > guard.ttl {
			delete(guard.clients, ip)
		}
	}
}

// Allow reports whether the IP still has tokens.
func (guard *FloodGuard) Allow(ip string) bool {
	guard.mu.Lock()
	defer guard.mu.Unlock()

	client, found := guard.clients[ip]
	if !found {
		client = &floodClient{limiter: rate.NewLimiter(guard.limit, guard.burst)}
		guard.clients[ip] = client
	}
	client.lastSeen = time.Now()

	return client.limiter.Allow()
}

// Handler is the chi middleware form of the guard.
func (guard *FloodGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !guard.Allow(requestutil.ClientIP(request)) {
			respond.Error(writer, request, apperr.RateLimited(1))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
