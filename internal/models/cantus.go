package models

import (
	"time"

	"gorm.io/gorm"
)

// CantusFirmus is a stored melody exercises are written against
type CantusFirmus struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title     string         `gorm:"not null" json:"title"`
	Source    string         `json:"source,omitempty"` // e.g. "Fux, Gradus ad Parnassum"
	Key       string         `gorm:"column:tonic;not null" json:"key"`
	Mode      string         `gorm:"not null;index" json:"mode"`
	Notes     []string       `gorm:"type:text;serializer:json" json:"notes"`
	Length    int            `gorm:"index" json:"length"` // len(Notes), kept for filtering
}

// BeforeSave keeps Length in sync with Notes
func (c *CantusFirmus) BeforeSave(_ *gorm.DB) error {
	c.Length = len(c.Notes)
	return nil
}

// ValidationLog records the outcome of an API validation
type ValidationLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	RequestID   string    `gorm:"index" json:"request_id"`
	UserID      string    `gorm:"index" json:"user_id,omitempty"`
	Species     int       `gorm:"not null;index" json:"species"`
	CantusSlug  string    `gorm:"index" json:"cantus_slug,omitempty"`
	Position    string    `json:"cp_position"`
	Valid       bool      `gorm:"not null" json:"valid"`
	Score       int       `gorm:"not null" json:"score"`
	Errors      int       `gorm:"default:0" json:"errors"`
	Warnings    int       `gorm:"default:0" json:"warnings"`
	Suggestions int       `gorm:"default:0" json:"suggestions"`
	DurationMS  int       `gorm:"not null" json:"duration_ms"`
}
