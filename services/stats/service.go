package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/lazymap"
)

const (
	CacheTTLFlag = "stats-cache-ttl"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.DurationFlag{
			Name:   CacheTTLFlag,
			Usage:  "stats cache ttl",
			Value:  5 * time.Minute,
			EnvVar: "STATS_CACHE_TTL",
		},
	)
}

const redisKeyPrefix = "stats:"

// Service caches Source results. The in-process lazymap collapses concurrent
// identical requests; redis, when reachable, carries results across restarts
// and replicas. Cache failures are logged and never fail a request.
type Service struct {
	src   Source
	redis *cs.RedisClient
	ttl   time.Duration
	gen   atomic.Int64

	summaries *lazymap.LazyMap[*Summary]
	types     *lazymap.LazyMap[[]TypeCount]
	years     *lazymap.LazyMap[[]YearCount]
	names     *lazymap.LazyMap[[]NameCount]
	bounds    *lazymap.LazyMap[*Bounds]
}

func New(c *cli.Context, src Source, redisCl *cs.RedisClient) *Service {
	ttl := c.Duration(CacheTTLFlag)
	cfg := &lazymap.Config{
		Expire:      ttl,
		ErrorExpire: 30 * time.Second,
	}
	return &Service{
		src:       src,
		redis:     redisCl,
		ttl:       ttl,
		summaries: lazymap.New[*Summary](cfg),
		types:     lazymap.New[[]TypeCount](cfg),
		years:     lazymap.New[[]YearCount](cfg),
		names:     lazymap.New[[]NameCount](cfg),
		bounds:    lazymap.New[*Bounds](cfg),
	}
}

func (s *Service) redisClient() redis.UniversalClient {
	if s.redis == nil {
		return nil
	}
	return s.redis.Get()
}

func cached[T any](ctx context.Context, s *Service, m *lazymap.LazyMap[T], key string, fetch func() (T, error)) (T, error) {
	return m.Get(fmt.Sprintf("%v:%v", key, s.gen.Load()), func() (T, error) {
		rkey := redisKeyPrefix + key
		cl := s.redisClient()
		if cl != nil {
			val, err := cl.Get(ctx, rkey).Result()
			if err == nil {
				var v T
				if jerr := json.Unmarshal([]byte(val), &v); jerr == nil {
					return v, nil
				}
			} else if !errors.Is(err, redis.Nil) {
				log.WithError(err).Warnf("failed to read stats cache %v", rkey)
			}
		}
		v, err := fetch()
		if err != nil {
			return v, err
		}
		if cl != nil {
			b, jerr := json.Marshal(v)
			if jerr == nil {
				if serr := cl.Set(ctx, rkey, b, s.ttl).Err(); serr != nil {
					log.WithError(serr).Warnf("failed to write stats cache %v", rkey)
				}
			}
		}
		return v, nil
	})
}

func (s *Service) Summary(ctx context.Context, f *Filter) (*Summary, error) {
	return cached(ctx, s, s.summaries, "summary:"+f.key(), func() (*Summary, error) {
		return s.src.Summary(ctx, f)
	})
}

func (s *Service) TypeBreakdown(ctx context.Context, f *Filter) ([]TypeCount, error) {
	return cached(ctx, s, s.types, "types:"+f.key(), func() ([]TypeCount, error) {
		return s.src.TypeBreakdown(ctx, f)
	})
}

func (s *Service) AddedByYear(ctx context.Context, f *Filter) ([]YearCount, error) {
	return cached(ctx, s, s.years, "years:"+f.key(), func() ([]YearCount, error) {
		return s.src.AddedByYear(ctx, f)
	})
}

func (s *Service) TopCountries(ctx context.Context, n int, f *Filter) ([]NameCount, error) {
	n = ClampTopN(n)
	return cached(ctx, s, s.names, fmt.Sprintf("countries:%v:%v", n, f.key()), func() ([]NameCount, error) {
		return s.src.TopCountries(ctx, n, f)
	})
}

func (s *Service) TopGenres(ctx context.Context, n int, f *Filter) ([]NameCount, error) {
	n = ClampTopN(n)
	return cached(ctx, s, s.names, fmt.Sprintf("genres:%v:%v", n, f.key()), func() ([]NameCount, error) {
		return s.src.TopGenres(ctx, n, f)
	})
}

func (s *Service) Ratings(ctx context.Context, f *Filter) ([]NameCount, error) {
	return cached(ctx, s, s.names, "ratings:"+f.key(), func() ([]NameCount, error) {
		return s.src.Ratings(ctx, f)
	})
}

func (s *Service) YearBounds(ctx context.Context) (*Bounds, error) {
	return cached(ctx, s, s.bounds, "bounds", func() (*Bounds, error) {
		return s.src.YearBounds(ctx)
	})
}

// Invalidate drops all cached aggregates, in-process and in redis. Called
// after every import.
func (s *Service) Invalidate(ctx context.Context) {
	s.gen.Add(1)
	cl := s.redisClient()
	if cl == nil {
		return
	}
	if err := dropRedisKeys(ctx, cl, redisKeyPrefix+"*"); err != nil {
		log.WithError(err).Warn("failed to drop stats cache")
	}
}

// DropCache removes every cached stats aggregate from redis.
func DropCache(ctx context.Context, redisCl *cs.RedisClient) error {
	if redisCl == nil || redisCl.Get() == nil {
		return errors.New("redis not initialized")
	}
	return dropRedisKeys(ctx, redisCl.Get(), redisKeyPrefix+"*")
}

func dropRedisKeys(ctx context.Context, cl redis.UniversalClient, pattern string) error {
	iter := cl.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := cl.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.Wrapf(err, "failed to delete %v", iter.Val())
		}
	}
	return iter.Err()
}
