package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vk-smartminds/practice-platform/internal/dto"
	"github.com/vk-smartminds/practice-platform/internal/repository"
)

// Recognised enrollment timeframes. Anything else means all time.
const (
	TimeframeWeek      = "week"
	TimeframeMonth     = "month"
	TimeframeSixMonths = "6months"
	TimeframeYear      = "year"
	TimeframeAll       = "all"
)

// EnrollmentService aggregates student signups by pincode.
type EnrollmentService interface {
	Stats(ctx context.Context, timeframe string) (dto.EnrollmentStats, error)
	StudentsByPincode(ctx context.Context, pincode, timeframe string) (dto.PincodeStudentsResponse, error)
}

type enrollmentService struct {
	repo     repository.EnrollmentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewEnrollmentService constructs the enrollment analytics service. cache may
// be nil, in which case every call hits the database.
func NewEnrollmentService(repo repository.EnrollmentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "enrollment_service").Logger(),
		now:      time.Now,
	}
}

// StatsInvalidator drops cached enrollment aggregates after students are
// added, moved between pincodes, or removed.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context)
}

type statsCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewStatsInvalidator returns an invalidator over the enrollment cache. A nil
// client yields a no-op.
func NewStatsInvalidator(client *redis.Client, logger zerolog.Logger) StatsInvalidator {
	return statsCache{client: client, logger: logger.With().Str("component", "enrollment_cache").Logger()}
}

func (c statsCache) InvalidateStats(ctx context.Context) {
	if c.client == nil {
		return
	}
	timeframes := []string{TimeframeWeek, TimeframeMonth, TimeframeSixMonths, TimeframeYear, TimeframeAll}
	keys := make([]string, 0, len(timeframes))
	for _, timeframe := range timeframes {
		keys = append(keys, statsCacheKey(timeframe))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate enrollment cache")
	}
}

func statsCacheKey(timeframe string) string {
	return "enrollment:stats:" + timeframe
}

func invalidateStats(ctx context.Context, stats StatsInvalidator) {
	if stats != nil {
		stats.InvalidateStats(ctx)
	}
}

// ResolveTimeframe maps a timeframe name to its cutoff relative to now. The
// returned name is canonical; unknown names resolve to all time with a nil cutoff.
func ResolveTimeframe(timeframe string, now time.Time) (string, *time.Time) {
	var cutoff time.Time
	switch strings.ToLower(strings.TrimSpace(timeframe)) {
	case TimeframeWeek:
		cutoff = now.AddDate(0, 0, -7)
	case TimeframeMonth:
		cutoff = now.AddDate(0, -1, 0)
	case TimeframeSixMonths:
		cutoff = now.AddDate(0, -6, 0)
	case TimeframeYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return TimeframeAll, nil
	}
	return strings.ToLower(strings.TrimSpace(timeframe)), &cutoff
}

func (s *enrollmentService) Stats(ctx context.Context, timeframe string) (dto.EnrollmentStats, error) {
	name, since := ResolveTimeframe(timeframe, s.now())
	cacheKey := statsCacheKey(name)

	tracer := otel.Tracer("github.com/vk-smartminds/practice-platform/internal/service/enrollment")
	ctx, span := tracer.Start(ctx, "enrollment.stats")
	span.SetAttributes(attribute.String("enrollment.timeframe", name), attribute.String("enrollment.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var stats dto.EnrollmentStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				stats.CacheHit = true
				span.SetAttributes(attribute.Bool("enrollment.cache_hit", true))
				return stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read enrollment cache")
			span.RecordError(err)
		}
	}

	rows, err := s.repo.CountByPincode(ctx, since)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_by_pincode_failed")
		return dto.EnrollmentStats{}, err
	}

	items := make([]dto.PincodeCount, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.PincodeCount{Pincode: row.Pincode, Count: row.Count})
	}
	stats := dto.EnrollmentStats{Timeframe: name, Since: since, Items: items}
	span.SetAttributes(attribute.Int("enrollment.pincodes", len(items)))

	if s.cache != nil {
		payload, err := json.Marshal(stats)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store enrollment cache")
				span.RecordError(err)
			}
		}
	}

	return stats, nil
}

func (s *enrollmentService) StudentsByPincode(ctx context.Context, pincode, timeframe string) (dto.PincodeStudentsResponse, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return dto.PincodeStudentsResponse{}, ErrPincodeRequired
	}
	name, since := ResolveTimeframe(timeframe, s.now())

	tracer := otel.Tracer("github.com/vk-smartminds/practice-platform/internal/service/enrollment")
	ctx, span := tracer.Start(ctx, "enrollment.students_by_pincode")
	span.SetAttributes(attribute.String("enrollment.timeframe", name))
	defer span.End()

	students, err := s.repo.ListByPincode(ctx, pincode, since)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_by_pincode_failed")
		return dto.PincodeStudentsResponse{}, err
	}

	projected := make([]dto.EnrolledStudent, 0, len(students))
	for _, student := range students {
		projected = append(projected, dto.EnrolledStudent{Name: student.Name, Email: student.Email, School: student.School})
	}

	return dto.PincodeStudentsResponse{
		Pincode:   pincode,
		Timeframe: name,
		Count:     int64(len(projected)),
		Students:  projected,
	}, nil
}
