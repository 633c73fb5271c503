package recovery

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"
	"github.com/mfarag11047/RepCoach/internal/telemetry/tracing"
	"github.com/mfarag11047/RepCoach/internal/workouts"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=recovery_test

type historySource interface {
	History(ctx context.Context) (workouts.History, error)
}

type musclesSource interface {
	KnownMuscles(ctx context.Context) ([]string, error)
}

type NewServiceParams struct {
	Engine         *Engine
	History        historySource
	Muscles        musclesSource
	MetricsManager *metrics.Manager
	// CacheSizeBytes of 0 disables the result cache.
	CacheSizeBytes int
	// TimeBucket is the granularity of cached results. Results computed
	// within the same bucket for the same history are shared.
	TimeBucket time.Duration
}

// Service computes recovery status for the stored history and the active
// exercise library. Results are cached per history content and time bucket.
type Service struct {
	engine         *Engine
	history        historySource
	muscles        musclesSource
	metricsManager *metrics.Manager
	cache          *freecache.Cache
	timeBucket     time.Duration
}

func NewService(params NewServiceParams) *Service {
	s := &Service{
		engine:         params.Engine,
		history:        params.History,
		muscles:        params.Muscles,
		metricsManager: params.MetricsManager,
		timeBucket:     params.TimeBucket,
	}
	if s.engine == nil {
		s.engine = NewEngine(DefaultHierarchy())
	}
	if params.CacheSizeBytes > 0 && params.TimeBucket > 0 {
		s.cache = freecache.NewCache(params.CacheSizeBytes)
	}
	return s
}

// Status returns the grouped recovery status as of at.
func (s *Service) Status(ctx context.Context, at time.Time) (_ GroupedStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := s.history.History(ctx)
	if err != nil {
		return GroupedStatus{}, fmt.Errorf("get history: %w", err)
	}
	knownMuscles, err := s.muscles.KnownMuscles(ctx)
	if err != nil {
		return GroupedStatus{}, fmt.Errorf("get known muscles: %w", err)
	}
	span.SetAttributes(
		attribute.Int("history.size", len(history)),
		attribute.Int("muscles.count", len(knownMuscles)),
	)

	if s.cache == nil {
		s.metricsManager.CounterRecoveryComputations.Inc()
		return s.engine.Compute(history, knownMuscles, at), nil
	}

	cacheKey := CacheKey(history, knownMuscles, at, s.timeBucket)
	if cachedBytes, err := s.cache.Get(cacheKey); err == nil {
		var groups []GroupStatus
		if err := json.Unmarshal(cachedBytes, &groups); err == nil {
			s.metricsManager.CounterRecoveryCacheHits.Inc()
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return NewGroupedStatus(groups), nil
		} else {
			log.Errorf("failed to unmarshal recovery status from cache: %s", err)
		}
	}
	s.metricsManager.CounterRecoveryCacheMisses.Inc()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	s.metricsManager.CounterRecoveryComputations.Inc()
	status := s.engine.Compute(history, knownMuscles, at)

	statusBytes, err := json.Marshal(status.Groups())
	if err != nil {
		log.Errorf("failed to marshal recovery status for cache: %s", err)
		return status, nil
	}
	expireSeconds := int(2 * s.timeBucket / time.Second)
	if expireSeconds < 1 {
		expireSeconds = 1
	}
	if err := s.cache.Set(cacheKey, statusBytes, expireSeconds); err != nil {
		log.Errorf("failed to write recovery status cache: %s", err)
	}

	return status, nil
}

// CacheKey identifies a recovery computation by the history content, the
// known muscles and the time bucket containing at.
func CacheKey(history workouts.History, knownMuscles []string, at time.Time, bucket time.Duration) []byte {
	keys := make([]string, 0, len(history))
	for k := range history {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		for _, ex := range history[k].Exercises {
			for _, m := range ex.MusclesWorked() {
				h.Write([]byte(m))
				h.Write([]byte{1})
			}
		}
		h.Write([]byte{2})
	}
	h.Write([]byte{3})
	for _, m := range knownMuscles {
		h.Write([]byte(m))
		h.Write([]byte{0})
	}

	var bucketBytes [8]byte
	binary.BigEndian.PutUint64(bucketBytes[:], uint64(at.Truncate(bucket).UnixNano()))
	h.Write(bucketBytes[:])

	return h.Sum(nil)
}
