package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/Conceptual-Machines/counterpoint-api/internal/logger"
	"github.com/Conceptual-Machines/counterpoint-api/internal/metrics"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
	"gorm.io/gorm"
)

const (
	defaultKey     = "C"
	defaultMode    = "major"
	topCantusLimit = 5
)

// InputError marks a request the caller has to fix
type InputError struct {
	Err  error
	Hint string // Optional correction, e.g. a suggested mode
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func inputErrorf(format string, args ...any) error {
	return &InputError{Err: fmt.Errorf(format, args...)}
}

// RequestMeta identifies who asked for a validation
type RequestMeta struct {
	RequestID string
	UserID    string
}

// Validation is the outcome of ValidationService.Validate
type Validation struct {
	Exercise counterpoint.Exercise
	Result   counterpoint.Result
	Cantus   *models.CantusFirmus // nil for an inline cantus firmus
	Duration time.Duration
}

type ValidationService struct {
	db         *gorm.DB
	cantus     *CantusService
	sentry     *metrics.SentryMetrics
	cloudwatch *metrics.Client
}

func NewValidationService(db *gorm.DB, cantus *CantusService, cloudwatch *metrics.Client) *ValidationService {
	return &ValidationService{
		db:         db,
		cantus:     cantus,
		sentry:     metrics.NewSentryMetrics(),
		cloudwatch: cloudwatch,
	}
}

// ExerciseFor turns a request into an exercise. When cantus is non-nil its
// notes are used and its key and mode fill in whatever the request leaves
// empty.
func ExerciseFor(req models.ValidateRequest, cantus *models.CantusFirmus) (counterpoint.Exercise, error) {
	species := counterpoint.Species(req.Species)
	if _, ok := counterpoint.ProfileFor(species); !ok {
		return counterpoint.Exercise{}, inputErrorf("species must be 1, 2 or 3, got %d", req.Species)
	}

	notes := req.CantusFirmus
	key, mode := req.Key, req.Mode
	if cantus != nil {
		notes = cantus.Notes
		if key == "" {
			key = cantus.Key
		}
		if mode == "" {
			mode = cantus.Mode
		}
	}
	if key == "" {
		key = defaultKey
	}
	if mode == "" {
		mode = defaultMode
	}

	ex, err := counterpoint.NewExercise(species, notes, req.Counterpoint, key, mode, req.Position)
	if err != nil {
		ierr := &InputError{Err: err}
		var merr *scale.UnknownModeError
		if errors.As(err, &merr) {
			if m, ok := SuggestMode(merr.Name); ok {
				ierr.Hint = fmt.Sprintf("did you mean %q?", m)
			}
		}
		return counterpoint.Exercise{}, ierr
	}
	return ex, nil
}

// CheckCantusSource requires exactly one of cantus_firmus and cantus_slug
func CheckCantusSource(req models.ValidateRequest) error {
	switch {
	case req.CantusSlug != "" && len(req.CantusFirmus) > 0:
		return inputErrorf("give either cantus_firmus or cantus_slug, not both")
	case req.CantusSlug == "" && len(req.CantusFirmus) == 0:
		return inputErrorf("a cantus firmus is required: set cantus_firmus or cantus_slug")
	}
	return nil
}

// BuildExercise resolves a stored cantus firmus if the request names one
func (s *ValidationService) BuildExercise(ctx context.Context, req models.ValidateRequest) (counterpoint.Exercise, *models.CantusFirmus, error) {
	if err := CheckCantusSource(req); err != nil {
		return counterpoint.Exercise{}, nil, err
	}

	var cantus *models.CantusFirmus
	if req.CantusSlug != "" {
		cf, err := s.cantus.Get(ctx, req.CantusSlug)
		if err != nil {
			return counterpoint.Exercise{}, nil, err
		}
		cantus = cf
	}

	ex, err := ExerciseFor(req, cantus)
	if err != nil {
		return counterpoint.Exercise{}, nil, err
	}
	return ex, cantus, nil
}

// Validate runs the engine on a request and records the outcome
func (s *ValidationService) Validate(ctx context.Context, req models.ValidateRequest, meta RequestMeta) (*Validation, error) {
	ex, cantus, err := s.BuildExercise(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := counterpoint.Validate(ex)
	if err != nil {
		return nil, &InputError{Err: err}
	}
	v := &Validation{
		Exercise: ex,
		Result:   res,
		Cantus:   cantus,
		Duration: time.Since(start),
	}

	s.record(ctx, v, meta)
	return v, nil
}

func (s *ValidationService) record(ctx context.Context, v *Validation, meta RequestMeta) {
	sample := metrics.ValidationSample{
		Species:     v.Exercise.Species.String(),
		Valid:       v.Result.Valid,
		Score:       v.Result.Score,
		Errors:      len(v.Result.Errors),
		Warnings:    len(v.Result.Warnings),
		Suggestions: len(v.Result.Suggestions),
		Duration:    v.Duration,
	}
	s.sentry.RecordValidation(ctx, sample)
	s.cloudwatch.RecordValidation(sample)

	fields := logger.Fields{"request_id": meta.RequestID}
	logger.LogValidation(ctx, sample.Species, sample.Valid, sample.Score, v.Duration, fields)

	entry := models.ValidationLog{
		RequestID:   meta.RequestID,
		UserID:      meta.UserID,
		Species:     int(v.Exercise.Species),
		Position:    string(v.Exercise.Position),
		Valid:       v.Result.Valid,
		Score:       v.Result.Score,
		Errors:      sample.Errors,
		Warnings:    sample.Warnings,
		Suggestions: sample.Suggestions,
		DurationMS:  int(v.Duration.Milliseconds()),
	}
	if v.Cantus != nil {
		entry.CantusSlug = v.Cantus.Slug
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Error("Failed to write validation log", err, logger.Fields{
			"request_id": meta.RequestID,
			"species":    sample.Species,
		})
	}
}

// Stats aggregates the validation log
func (s *ValidationService) Stats(ctx context.Context) (*models.ValidationStats, error) {
	db := s.db.WithContext(ctx).Model(&models.ValidationLog{})
	stats := &models.ValidationStats{
		BySpecies: map[int]int64{},
		TopCantus: []models.CantusUsage{},
	}

	if err := db.Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("count validations: %w", err)
	}
	if stats.Total == 0 {
		return stats, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.ValidationLog{}).
		Where("valid = ?", true).Count(&stats.Valid).Error; err != nil {
		return nil, fmt.Errorf("count valid: %w", err)
	}

	var avg float64
	if err := s.db.WithContext(ctx).Model(&models.ValidationLog{}).
		Select("COALESCE(AVG(score), 0)").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("average score: %w", err)
	}
	stats.AvgScore = avg

	var species []struct {
		Species int
		Count   int64
	}
	if err := s.db.WithContext(ctx).Model(&models.ValidationLog{}).
		Select("species, COUNT(*) AS count").Group("species").Scan(&species).Error; err != nil {
		return nil, fmt.Errorf("count by species: %w", err)
	}
	for _, row := range species {
		stats.BySpecies[row.Species] = row.Count
	}

	if err := s.db.WithContext(ctx).Model(&models.ValidationLog{}).
		Select("cantus_slug AS slug, COUNT(*) AS count").
		Where("cantus_slug <> ''").
		Group("cantus_slug").
		Order("count DESC, slug").
		Limit(topCantusLimit).
		Scan(&stats.TopCantus).Error; err != nil {
		return nil, fmt.Errorf("top cantus firmi: %w", err)
	}

	return stats, nil
}
