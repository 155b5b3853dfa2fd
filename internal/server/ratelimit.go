package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ipWindow is one client's activity inside the current detector window
type ipWindow struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// in fixed windows of DetectorWindow. All counters reset together when a
// window ends.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clock       clockwork.Clock
	windowStart time.Time
	clients     map[string]*ipWindow
}

func NewSuspiciousActivityDetector(clock clockwork.Clock) *SuspiciousActivityDetector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SuspiciousActivityDetector{
		clock:       clock,
		windowStart: clock.Now(),
		clients:     make(map[string]*ipWindow),
	}
}

// client returns ip's counters, rolling the window first. Caller holds mu.
func (s *SuspiciousActivityDetector) client(ip string) *ipWindow {
	if now := s.clock.Now(); now.Sub(s.windowStart) > DetectorWindow {
		clear(s.clients)
		s.windowStart = now
	}
	c, ok := s.clients[ip]
	if !ok {
		c = &ipWindow{}
		s.clients[ip] = c
	}
	return c
}

func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	c := s.client(ip)
	c.failedAuth++
	count := c.failedAuth
	s.mu.Unlock()

	if count >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
}

// FailedAuthCount returns the failures recorded for ip in the current window
func (s *SuspiciousActivityDetector) FailedAuthCount(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client(ip).failedAuth
}

// RecordRequest counts a request and reports whether ip is still within budget
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	c := s.client(ip)
	c.requests++
	count := c.requests
	s.mu.Unlock()

	if count <= MaxRequestsPerWindow {
		return true
	}
	if count%HighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", count)
	}
	return false
}

func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP returns the client address. X-Forwarded-For is believed only when
// the direct peer is a trusted proxy, and then only its rightmost hop.
func extractIP(r *http.Request, trustedProxies []string) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, peer) {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	if i := strings.LastIndexByte(forwarded, ','); i >= 0 {
		forwarded = forwarded[i+1:]
	}
	return strings.TrimSpace(forwarded)
}
