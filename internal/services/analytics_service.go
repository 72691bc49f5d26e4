package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"civicpulse/internal/cache"
	"civicpulse/internal/dto"
	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
	"civicpulse/internal/models"
	"civicpulse/internal/uuid"
)

const analyticsKeyPrefix = "civicpulse:analytics:"

// AnalyticsOptions tunes aggregation and caching.
type AnalyticsOptions struct {
	RedZoneThreshold int
	CacheTTL         time.Duration
}

// analyticsService aggregates grievances for dashboards. Results are cached
// until the next grievance write.
type analyticsService struct {
	db    *gorm.DB
	cache cache.Cache
	opts  AnalyticsOptions
	now   func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer. A nil cache disables caching.
func NewAnalyticsService(db *gorm.DB, c cache.Cache, opts AnalyticsOptions) AnalyticsServicer {
	if c == nil {
		c = cache.Noop{}
	}
	if opts.RedZoneThreshold <= 0 {
		opts.RedZoneThreshold = 10
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	return &analyticsService{db: db, cache: c, opts: opts, now: time.Now}
}

// cached returns the cached value for key or computes and stores it.
func cached[T any](ctx context.Context, s *analyticsService, key string, compute func() (T, error)) (T, error) {
	var out T
	fullKey := analyticsKeyPrefix + key
	hit, err := s.cache.Get(ctx, fullKey, &out)
	if err != nil {
		logger.Get().Warnw("analytics cache read failed", "key", fullKey, "error", err)
	}
	if hit {
		return out, nil
	}

	out, err = compute()
	if err != nil {
		return out, err
	}
	if err := s.cache.Set(ctx, fullKey, out, s.opts.CacheTTL); err != nil {
		logger.Get().Warnw("analytics cache write failed", "key", fullKey, "error", err)
	}
	return out, nil
}

func (s *analyticsService) load(officerID string) ([]models.Grievance, error) {
	query := s.db.Model(&models.Grievance{})
	if officerID != "" {
		if !uuid.IsValid(officerID) {
			return nil, nil
		}
		query = query.Where("assigned_officer_id = ?", officerID)
	}
	var grievances []models.Grievance
	if err := query.Find(&grievances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return grievances, nil
}

func (s *analyticsService) Summary(ctx context.Context) (*dto.AnalyticsData, error) {
	return cached(ctx, s, "summary", func() (*dto.AnalyticsData, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return summarize(all), nil
	})
}

func (s *analyticsService) OfficerSummary(ctx context.Context, officerID string) (*dto.AnalyticsData, error) {
	return cached(ctx, s, "summary:officer:"+officerID, func() (*dto.AnalyticsData, error) {
		mine, err := s.load(officerID)
		if err != nil {
			return nil, err
		}
		return summarize(mine), nil
	})
}

func (s *analyticsService) SLA(ctx context.Context) (*dto.SLAMetrics, error) {
	return cached(ctx, s, "sla", func() (*dto.SLAMetrics, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return slaMetrics(all, s.now()), nil
	})
}

func (s *analyticsService) OfficerSLA(ctx context.Context, officerID string) (*dto.SLAMetrics, error) {
	return cached(ctx, s, "sla:officer:"+officerID, func() (*dto.SLAMetrics, error) {
		mine, err := s.load(officerID)
		if err != nil {
			return nil, err
		}
		return slaMetrics(mine, s.now()), nil
	})
}

func (s *analyticsService) Zones(ctx context.Context) ([]dto.ZoneAnalytics, error) {
	return cached(ctx, s, "zones", func() ([]dto.ZoneAnalytics, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return zoneAnalytics(all, s.opts.RedZoneThreshold), nil
	})
}

func (s *analyticsService) HeatMap(ctx context.Context) ([]dto.HeatMapPoint, error) {
	return cached(ctx, s, "heatmap", func() ([]dto.HeatMapPoint, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return heatMap(all, s.opts.RedZoneThreshold), nil
	})
}

func (s *analyticsService) GrievanceAnalysis(ctx context.Context) (*dto.GrievanceAnalysis, error) {
	return cached(ctx, s, "analysis", func() (*dto.GrievanceAnalysis, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return grievanceAnalysis(all, s.now()), nil
	})
}

func (s *analyticsService) OfficerGrievanceAnalysis(ctx context.Context, officerID string) (*dto.GrievanceAnalysis, error) {
	return cached(ctx, s, "analysis:officer:"+officerID, func() (*dto.GrievanceAnalysis, error) {
		mine, err := s.load(officerID)
		if err != nil {
			return nil, err
		}
		return grievanceAnalysis(mine, s.now()), nil
	})
}

func (s *analyticsService) Complete(ctx context.Context) (*dto.ComplaintAnalytics, error) {
	return cached(ctx, s, "complete", func() (*dto.ComplaintAnalytics, error) {
		all, err := s.load("")
		if err != nil {
			return nil, err
		}
		return completeAnalytics(all, s.now(), s.opts.RedZoneThreshold), nil
	})
}

// Performance is not cached: warnings and appreciations change outside grievance writes.
func (s *analyticsService) Performance(_ context.Context, officerID string) (*dto.Performance, error) {
	if !uuid.IsValid(officerID) {
		return nil, apperrors.ErrUserNotFound
	}
	var officer models.User
	if err := s.db.Where("id = ?", officerID).First(&officer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if officer.Role != lifecycle.RoleOfficer {
		return nil, apperrors.ErrNotAnOfficer
	}

	var assigned []models.Grievance
	if err := s.db.Preload("Feedbacks").Where("assigned_officer_id = ?", officerID).Find(&assigned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return officerPerformance(&officer, assigned), nil
}

// Invalidate drops every cached aggregate.
func (s *analyticsService) Invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, analyticsKeyPrefix); err != nil {
		logger.Get().Warnw("analytics cache invalidation failed", "error", err)
	}
}
