package database

import (
	"testing"

	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteMemory(t *testing.T) {
	db, err := Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	cf := models.CantusFirmus{Slug: "t", Title: "T", Key: "C", Mode: "major", Notes: []string{"C4", "D4", "C4"}}
	require.NoError(t, db.Create(&cf).Error)

	var got models.CantusFirmus
	require.NoError(t, db.Where("slug = ?", "t").First(&got).Error)
	assert.Equal(t, []string{"C4", "D4", "C4"}, got.Notes)
	assert.Equal(t, 3, got.Length)

	assert.True(t, db.Migrator().HasTable(&models.ValidationLog{}))
}

func TestConnect_Empty(t *testing.T) {
	_, err := Connect("")
	assert.Error(t, err)
}
