package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/counterpoint-api/internal/logger"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/pitch"
	"gorm.io/gorm"
)

var (
	ErrCantusNotFound = errors.New("cantus firmus not found")
	ErrCantusExists   = errors.New("cantus firmus already exists")
)

// CantusFilter narrows List results; zero values match everything
type CantusFilter struct {
	Mode      string
	Key       string
	MaxLength int
}

type CantusService struct {
	db *gorm.DB
}

func NewCantusService(db *gorm.DB) *CantusService {
	return &CantusService{db: db}
}

// List returns stored cantus firmi ordered by slug
func (s *CantusService) List(ctx context.Context, f CantusFilter) ([]models.CantusFirmus, error) {
	q := s.db.WithContext(ctx).Model(&models.CantusFirmus{})
	if f.Mode != "" {
		q = q.Where("mode = ?", strings.ToLower(f.Mode))
	}
	if f.Key != "" {
		key, err := canonicalKey(f.Key)
		if err != nil {
			return nil, &InputError{Err: fmt.Errorf("key: %w", err)}
		}
		q = q.Where("tonic = ?", key)
	}
	if f.MaxLength > 0 {
		q = q.Where("length <= ?", f.MaxLength)
	}

	var out []models.CantusFirmus
	if err := q.Order("slug").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list cantus firmi: %w", err)
	}
	return out, nil
}

// Get fetches one cantus firmus by slug
func (s *CantusService) Get(ctx context.Context, slug string) (*models.CantusFirmus, error) {
	var cf models.CantusFirmus
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&cf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCantusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cantus firmus %q: %w", slug, err)
	}
	return &cf, nil
}

// Create stores a new cantus firmus after checking its notes, key and mode
func (s *CantusService) Create(ctx context.Context, cf *models.CantusFirmus) error {
	cf.Mode = strings.ToLower(strings.TrimSpace(cf.Mode))
	if err := CheckCantus(cf.Slug, cf.Key, cf.Mode, cf.Notes); err != nil {
		return &InputError{Err: err}
	}
	cf.Key, _ = canonicalKey(cf.Key)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CantusFirmus{}).Where("slug = ?", cf.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCantusExists
		}
		return tx.Create(cf).Error
	})
}

// Delete removes a cantus firmus permanently so its slug can be reused
func (s *CantusService) Delete(ctx context.Context, slug string) error {
	res := s.db.WithContext(ctx).Unscoped().Where("slug = ?", slug).Delete(&models.CantusFirmus{})
	if res.Error != nil {
		return fmt.Errorf("delete cantus firmus %q: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCantusNotFound
	}
	return nil
}

// canonicalKey spells a tonic the way it is stored, e.g. "f#" becomes "F#"
func canonicalKey(key string) (string, error) {
	class, err := pitch.ParseClass(key)
	if err != nil {
		return "", err
	}
	return class.String(), nil
}

// Seed inserts catalog entries when the table is empty and returns how many
// were inserted
func (s *CantusService) Seed(ctx context.Context, entries []CatalogEntry) (int, error) {
	start := time.Now()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.CantusFirmus{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count cantus firmi: %w", err)
	}
	if count > 0 {
		logger.Debug("Catalog already seeded", logger.Fields{"existing": count})
		return 0, nil
	}

	rows := make([]models.CantusFirmus, 0, len(entries))
	for _, e := range entries {
		row := e.Model()
		if key, err := canonicalKey(row.Key); err == nil {
			row.Key = key
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed cantus firmi: %w", err)
	}

	logger.Info("Catalog seeded", logger.Fields{
		"inserted":    len(rows),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return len(rows), nil
}
