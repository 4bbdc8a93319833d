package main

import (
	"context"
	"testing"

	"github.com/Conceptual-Machines/counterpoint-api/internal/database"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	got := filterSensitiveHeaders(map[string]string{
		"Authorization": "Bearer abc",
		"cookie":        "session=1",
		"Content-Type":  "application/json",
	})
	assert.Equal(t, "[REDACTED]", got["Authorization"])
	assert.Equal(t, "[REDACTED]", got["cookie"])
	assert.Equal(t, "application/json", got["Content-Type"])
}

func TestSeedCatalog(t *testing.T) {
	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	require.NoError(t, seedCatalog(context.Background(), db))
	require.NoError(t, seedCatalog(context.Background(), db))

	var count int64
	require.NoError(t, db.Model(&models.CantusFirmus{}).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}
