package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/academic-voice-hub/avh-go-api/internal/analytics"
	"github.com/academic-voice-hub/avh-go-api/internal/dto"
	"github.com/academic-voice-hub/avh-go-api/internal/repository"
)

const topStudentLimit = 10

// AnalyticsService aggregates the teacher dashboard rollups over a
// filtered result set, with a cache in front of the unfiltered summary.
type AnalyticsService interface {
	GetSummary(ctx context.Context, filter analytics.Filter) (dto.AnalyticsResponse, error)
}

type analyticsService struct {
	results  repository.ResultRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAnalyticsService constructs the analytics service. The cache client
// may be nil, in which case every request aggregates from storage.
func NewAnalyticsService(results repository.ResultRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		results:  results,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
	}
}

func (s *analyticsService) GetSummary(ctx context.Context, filter analytics.Filter) (dto.AnalyticsResponse, error) {
	tracer := otel.Tracer("github.com/academic-voice-hub/avh-go-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.aggregate")
	defer span.End()

	cacheKey := s.cacheKey(filter)
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))

	// Only the unfiltered dashboard view is cached; filtered drill-downs
	// are cheap linear scans over already-small sets.
	cacheable := filter.IsZero()

	if s.cache != nil && cacheable {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	results, err := s.results.List(ctx, repository.ResultFilter{
		StudentID:    activeValue(filter.StudentID),
		Subject:      activeValue(filter.Subject),
		AcademicYear: activeValue(filter.AcademicYear),
		Semester:     activeValue(filter.Semester),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_results_failed")
		return dto.AnalyticsResponse{}, err
	}

	summary := dto.AnalyticsResponse{
		TotalResults:      len(results),
		GradeDistribution: analytics.GradeDistribution(results),
		TopStudents:       analytics.PerStudentAverage(results, topStudentLimit),
		SubjectAverages:   analytics.PerSubjectAverage(results),
		Progress:          analytics.TimeSeriesProgress(results),
	}

	span.SetAttributes(attribute.Int("analytics.result_count", len(results)))

	if s.cache != nil && cacheable {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *analyticsService) cacheKey(filter analytics.Filter) string {
	if filter.IsZero() {
		return "analytics:summary"
	}
	return fmt.Sprintf("analytics:summary:%s:%s:%s:%s", filter.StudentID, filter.Subject, filter.AcademicYear, filter.Semester)
}

func activeValue(value string) string {
	if value == analytics.All {
		return ""
	}
	return value
}
