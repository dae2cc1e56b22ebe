// Package middleware holds gRPC interceptor plumbing shared by the server.
package middleware

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc/peer"

	"github.com/KirkDiggler/pokechain-api/internal/errors"
)

const unknownPeer = "unknown"

// RateLimitConfig sets the per-peer token bucket
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// PeerLimiter keeps one token bucket per remote host. It satisfies the
// go-grpc-middleware ratelimit.Limiter interface.
type PeerLimiter struct {
	config  RateLimitConfig
	clients map[string]*rate.Limiter
	mu      sync.RWMutex
}

// NewPeerLimiter creates a limiter; call Run to evict idle peers
func NewPeerLimiter(cfg RateLimitConfig) *PeerLimiter {
	return &PeerLimiter{
		config:  cfg,
		clients: make(map[string]*rate.Limiter),
	}
}

// Limit rejects the call with ResourceExhausted once the peer's bucket is empty
func (l *PeerLimiter) Limit(ctx context.Context) error {
	host := peerHost(ctx)
	if l.limiter(host).Allow() {
		return nil
	}

	slog.WarnContext(ctx, "Rate limit exceeded",
		"client", host,
		"requests_per_second", l.config.RequestsPerSecond,
		"burst_size", l.config.BurstSize,
	)
	return errors.ResourceExhaustedf("rate limit exceeded for %s", host)
}

func (l *PeerLimiter) limiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.clients[host]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists = l.clients[host]; !exists {
		limiter = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.BurstSize)
		l.clients[host] = limiter
	}
	return limiter
}

// Sweep drops peers whose bucket has refilled by now
func (l *PeerLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for host, limiter := range l.clients {
		if limiter.TokensAt(now) >= float64(l.config.BurstSize) {
			delete(l.clients, host)
		}
	}
}

// Peers reports how many buckets are tracked
func (l *PeerLimiter) Peers() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// Run sweeps every interval until ctx is done
func (l *PeerLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Sweep(now)
		}
	}
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return unknownPeer
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
