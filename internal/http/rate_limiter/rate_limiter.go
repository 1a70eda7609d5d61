package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerIP hands out one token-bucket limiter per caller IP. Used on the OAuth
// endpoints, which are reachable without a session.
type PerIP struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	rps      rate.Limit
	burst    int
}

func NewPerIP(rps rate.Limit, burst int) *PerIP {
	return &PerIP{
		visitors: make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
	}
}

func (p *PerIP) Allow(ip string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	v, exists := p.visitors[ip]
	if !exists {
		v = &clientLimiter{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// StartCleanupLoop drops limiters idle for more than five minutes. Run it in
// a goroutine from main.
func (p *PerIP) StartCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		p.mu.Lock()
		for ip, v := range p.visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(p.visitors, ip)
			}
		}
		p.mu.Unlock()
	}
}

func (p *PerIP) Reset() {
	p.mu.Lock()
	p.visitors = make(map[string]*clientLimiter)
	p.mu.Unlock()
}
