package preview

import (
	"net"
	"net/http"
	"strings"
	"sync"
)

// connLimiter caps open preview connections per client IP and in total.
// A limit of zero disables that check.
type connLimiter struct {
	mu       sync.Mutex
	perIP    map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

func newConnLimiter(maxPerIP, maxTotal int) *connLimiter {
	return &connLimiter{
		perIP:    make(map[string]int),
		maxPerIP: maxPerIP,
		maxTotal: maxTotal,
	}
}

// tryAcquire takes a slot for ip, or reports false when a limit is reached.
func (c *connLimiter) tryAcquire(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxTotal > 0 && c.total >= c.maxTotal {
		return false
	}
	if c.maxPerIP > 0 && c.perIP[ip] >= c.maxPerIP {
		return false
	}
	c.perIP[ip]++
	c.total++
	return true
}

func (c *connLimiter) release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.perIP[ip] > 0 {
		c.perIP[ip]--
		if c.perIP[ip] == 0 {
			delete(c.perIP, ip)
		}
		c.total--
	}
}

// open returns the number of held slots.
func (c *connLimiter) open() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// "client, proxy1, proxy2"
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
