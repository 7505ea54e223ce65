package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-box-office/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 {
		cw.buf.Write(b)
	} else if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// generationKey holds the purge generation.  Every entry key embeds the
// generation it was read under, so a response computed before a purge and
// stored after it lands under a key no later request reads.
func generationKey(prefix string) string { return prefix + ":gen" }

// cacheGeneration returns the current purge generation, 0 when none is set.
func cacheGeneration(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
	gen, err := rdb.Get(ctx, generationKey(prefix)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Build a stable cache key honoring prefix/strategy and generation.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context, gen int64) string {
	r := c.Request()
	// the concrete path, not the route template: /v1/movies/:id/seats
	// must not share one entry across movies
	route := r.URL.Path
	query := r.URL.RawQuery

	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", route}
	case "method_route":
		parts = []string{"method", r.Method, "route", route}
	case "method_route_query":
		parts = []string{"method", r.Method, "route", route, "q", query}
	default: // "route_query"
		parts = []string{"route", route, "q", query}
	}

	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%d:%x", cfg.Prefix, gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:8+len(hdrJSON)], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// NewRedisCache caches successful catalog responses in Redis.  Headers are
// stored with the body so clients see identical formatting on a hit.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxBody := int64(cfg.MaxBodyBytes)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
				return next(c)
			}

			ctx := c.Request().Context()
			gen, err := cacheGeneration(ctx, rdb, cfg.Prefix)
			if err != nil {
				return next(c)
			}
			key := cacheKeyFrom(cfg, c, gen)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, hdr, body, ok := decodePayload(bs); ok {
					for k, vals := range hdr {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(status)
					if len(body) > 0 {
						_, _ = c.Response().Write(body)
					}
					return nil
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}
			// truncated bodies are never stored
			if cw.status != http.StatusOK || (maxBody > 0 && cw.size > maxBody) {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
				_ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
			}
			return nil
		}
	}
}

// CachePurger invalidates every cached response under the cache prefix.
// It is called after bookings, reviews and admin changes.  Bumping the
// generation makes existing entries unreachable at once, including one a
// concurrent request is still writing; the old entries are then deleted.
type CachePurger struct {
	rdb    *redis.Client
	prefix string
	log    logrus.FieldLogger
}

// NewCachePurger returns nil when caching is disabled; a nil purger is a
// valid no-op.
func NewCachePurger(cfg config.CacheConfig, rdb *redis.Client, log logrus.FieldLogger) *CachePurger {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &CachePurger{rdb: rdb, prefix: cfg.Prefix, log: log}
}

// Purge invalidates the cached entries.  Failures are logged, not
// returned: the mutation that triggered the purge has already been
// committed.
func (p *CachePurger) Purge(ctx context.Context) {
	if p == nil {
		return
	}
	gen, err := p.rdb.Incr(ctx, generationKey(p.prefix)).Result()
	if err != nil {
		p.log.WithError(err).Warn("cache generation bump failed")
	}
	n, err := PurgeCache(ctx, p.rdb, p.prefix)
	if err != nil {
		p.log.WithError(err).Warn("cache purge failed")
		return
	}
	p.log.WithFields(logrus.Fields{"keys": n, "generation": gen}).Debug("cache purged")
}

// PurgeCache deletes every entry under prefix using SCAN so that Redis is
// never blocked by KEYS.  The generation counter is kept.  It returns the
// number of keys deleted.
func PurgeCache(ctx context.Context, rdb *redis.Client, prefix string) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+":*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan %s: %w", prefix, err)
		}
		entries := keys[:0]
		for _, k := range keys {
			if k != generationKey(prefix) {
				entries = append(entries, k)
			}
		}
		if len(entries) > 0 {
			n, err := rdb.Del(ctx, entries...).Result()
			if err != nil {
				return deleted, fmt.Errorf("del %s: %w", prefix, err)
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
