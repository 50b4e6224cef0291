// Middleware: распределённый лимит запросов через Redis (по IP клиента).
package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/senyabanana/freight-service/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Second
)

// Counter считает запросы в окне.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter - Counter поверх INCR/EXPIRE.
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		c.rdb.Expire(ctx, key, window)
	} else if ttl, _ := c.rdb.TTL(ctx, key).Result(); ttl < 0 {
		c.rdb.Expire(ctx, key, window)
	}
	return count, nil
}

// TrustedProxies - адреса прокси, которым разрешено передавать X-Forwarded-For.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies разбирает список IP и CIDR; пустые элементы пропускаются.
func ParseTrustedProxies(list []string) (TrustedProxies, error) {
	var proxies TrustedProxies
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
			}
			proxies = append(proxies, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
		}
		addr = addr.Unmap()
		proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return proxies, nil
}

func (p TrustedProxies) trusts(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RateLimit ограничивает число запросов в секунду на клиента; при превышении - 429.
// Если Redis недоступен, запрос пропускается.
func RateLimit(counter Counter, limitPerSec int, proxies TrustedProxies, logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limitPerSec <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			count, err := counter.Incr(ctx, rateLimitKeyPrefix+clientIP(r, proxies), rateLimitWindow)
			if err != nil {
				logger.Warn("rate limit counter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(limitPerSec) {
				w.Header().Set("Retry-After", "1")
				utils.SendErrorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limitPerSec))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берёт адрес соединения. X-Forwarded-For читается, только если соединение пришло
// от доверенного прокси: справа налево до первого недоверенного адреса.
func clientIP(r *http.Request, proxies TrustedProxies) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" || !proxies.trusts(remote) {
		return remote
	}

	hops := strings.Split(fwd, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			return remote
		}
		if !proxies.trusts(hop) {
			return hop
		}
	}
	return remote
}
