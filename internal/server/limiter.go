package server

import (
	"golang.org/x/time/rate"

	"github.com/strandkv/strand/pkg/cmap"
)

// ipLimiter applies a per-IP token bucket to command dispatch.
type ipLimiter struct {
	limiters *cmap.Map[*rate.Limiter]
	limit    rate.Limit
	burst    int
}

func newIPLimiter(perSecond int) *ipLimiter {
	return &ipLimiter{
		limiters: cmap.New[*rate.Limiter](),
		limit:    rate.Limit(perSecond),
		burst:    perSecond,
	}
}

// allow reports whether one more command from ip may run now.
func (l *ipLimiter) allow(ip string) bool {
	lim := l.limiters.GetOrCompute(ip, func() *rate.Limiter {
		return rate.NewLimiter(l.limit, l.burst)
	})
	return lim.Allow()
}
