package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Conceptual-Machines/counterpoint-api/internal/counterpoint"
	"github.com/Conceptual-Machines/counterpoint-api/internal/database"
	"github.com/Conceptual-Machines/counterpoint-api/internal/metrics"
	"github.com/Conceptual-Machines/counterpoint-api/internal/models"
	"github.com/Conceptual-Machines/counterpoint-api/internal/music/scale"
	"github.com/Conceptual-Machines/counterpoint-api/pkg/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seededCantus(t *testing.T, db *gorm.DB) *CantusService {
	t.Helper()
	entries, err := LoadCatalog(embedded.CantusFirmiYAML)
	require.NoError(t, err)
	svc := NewCantusService(db)
	n, err := svc.Seed(context.Background(), entries)
	require.NoError(t, err)
	require.Equal(t, len(entries), n)
	return svc
}

func TestLoadCatalog_Embedded(t *testing.T) {
	entries, err := LoadCatalog(embedded.CantusFirmiYAML)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	dorian, ok := FindEntry(entries, "fux-dorian")
	require.True(t, ok)
	assert.Equal(t, "D", dorian.Key)
	assert.Equal(t, "dorian", dorian.Mode)
	assert.Len(t, dorian.Notes, 11)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad note", "cantus_firmi:\n  - {slug: a, title: A, key: C, mode: major, notes: [C4, X4]}\n"},
		{"bad mode", "cantus_firmi:\n  - {slug: a, title: A, key: C, mode: dorain, notes: [C4]}\n"},
		{"no notes", "cantus_firmi:\n  - {slug: a, title: A, key: C, mode: major, notes: []}\n"},
		{"duplicate", "cantus_firmi:\n  - {slug: a, title: A, key: C, mode: major, notes: [C4]}\n  - {slug: a, title: B, key: C, mode: major, notes: [C4]}\n"},
		{"not yaml", "cantus_firmi: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSuggestMode(t *testing.T) {
	m, ok := SuggestMode("dorain")
	require.True(t, ok)
	assert.Equal(t, scale.Dorian, m)

	m, ok = SuggestMode("Mixolidian")
	require.True(t, ok)
	assert.Equal(t, scale.Mixolydian, m)

	_, ok = SuggestMode("xyz")
	assert.False(t, ok)

	_, ok = SuggestMode("")
	assert.False(t, ok)
}

func TestCantusService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := seededCantus(t, newTestDB(t))

	all, err := svc.List(ctx, CantusFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 7)

	dorian, err := svc.List(ctx, CantusFilter{Mode: "Dorian"})
	require.NoError(t, err)
	require.Len(t, dorian, 1)
	assert.Equal(t, "fux-dorian", dorian[0].Slug)

	short, err := svc.List(ctx, CantusFilter{MaxLength: 5})
	require.NoError(t, err)
	require.Len(t, short, 1)
	assert.Equal(t, "short-c-major", short[0].Slug)

	inC, err := svc.List(ctx, CantusFilter{Key: "C"})
	require.NoError(t, err)
	assert.Len(t, inC, 2)

	inD, err := svc.List(ctx, CantusFilter{Key: "d"})
	require.NoError(t, err)
	require.Len(t, inD, 1)
	assert.Equal(t, "fux-dorian", inD[0].Slug)

	var keyErr *InputError
	_, err = svc.List(ctx, CantusFilter{Key: "H"})
	assert.True(t, errors.As(err, &keyErr))

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCantusNotFound))

	cf := &models.CantusFirmus{Slug: "mine", Title: "Mine", Key: "g", Mode: "Major", Notes: []string{"G3", "A3", "G3"}}
	require.NoError(t, svc.Create(ctx, cf))
	assert.Equal(t, "major", cf.Mode)
	assert.Equal(t, "G", cf.Key)

	inG, err := svc.List(ctx, CantusFilter{Key: "G"})
	require.NoError(t, err)
	assert.Len(t, inG, 2)
	assert.True(t, errors.Is(svc.Create(ctx, cf), ErrCantusExists))

	bad := &models.CantusFirmus{Slug: "bad", Title: "Bad", Key: "C", Mode: "major", Notes: []string{"C4", "Q4"}}
	var ierr *InputError
	assert.True(t, errors.As(svc.Create(ctx, bad), &ierr))

	got, err := svc.Get(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Length)

	require.NoError(t, svc.Delete(ctx, "mine"))
	assert.True(t, errors.Is(svc.Delete(ctx, "mine"), ErrCantusNotFound))

	// The slug is free again after a delete.
	cf.ID = 0
	require.NoError(t, svc.Create(ctx, cf))
}

func TestCantusService_SeedOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := seededCantus(t, db)

	entries, err := LoadCatalog(embedded.CantusFirmiYAML)
	require.NoError(t, err)
	n, err := svc.Seed(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCheckCantusSource(t *testing.T) {
	tests := []struct {
		name string
		req  models.ValidateRequest
		want string
	}{
		{"inline", models.ValidateRequest{CantusFirmus: []string{"C4"}}, ""},
		{"slug", models.ValidateRequest{CantusSlug: "fux-dorian"}, ""},
		{"both", models.ValidateRequest{CantusFirmus: []string{"C4"}, CantusSlug: "fux-dorian"}, "not both"},
		{"neither", models.ValidateRequest{}, "cantus firmus is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCantusSource(tt.req)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var ierr *InputError
			require.True(t, errors.As(err, &ierr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExerciseFor(t *testing.T) {
	req := models.ValidateRequest{
		Species:      1,
		CantusFirmus: []string{"C4", "D4", "C4"},
		Counterpoint: []string{"G4", "F4", "C5"},
	}
	ex, err := ExerciseFor(req, nil)
	require.NoError(t, err)
	assert.Equal(t, scale.Major, ex.Mode)
	assert.Equal(t, "C", ex.Key.String())
	assert.Equal(t, counterpoint.Upper, ex.Position)

	cantus := &models.CantusFirmus{Slug: "d", Key: "D", Mode: "dorian", Notes: []string{"D4", "E4", "D4"}}
	ex, err = ExerciseFor(models.ValidateRequest{Species: 1, Counterpoint: []string{"A4", "G4", "D5"}}, cantus)
	require.NoError(t, err)
	assert.Equal(t, scale.Dorian, ex.Mode)
	assert.Equal(t, "D4", ex.CantusFirmus[0].String())

	req.Mode = "dorain"
	_, err = ExerciseFor(req, nil)
	var ierr *InputError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, `did you mean "dorian"?`, ierr.Hint)

	req.Mode = ""
	req.Species = 4
	_, err = ExerciseFor(req, nil)
	assert.True(t, errors.As(err, &ierr))
}

func TestValidationService_Validate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cantus := seededCantus(t, db)
	cw, err := metrics.NewClient(ctx, "test")
	require.NoError(t, err)
	svc := NewValidationService(db, cantus, cw)

	v, err := svc.Validate(ctx, models.ValidateRequest{
		Species:      1,
		CantusSlug:   "short-c-major",
		Counterpoint: []string{"C5", "B4", "G4", "B4", "C5"},
	}, RequestMeta{RequestID: "r1"})
	require.NoError(t, err)
	assert.True(t, v.Result.Valid)
	assert.Equal(t, 100, v.Result.Score)
	require.NotNil(t, v.Cantus)

	_, err = svc.Validate(ctx, models.ValidateRequest{
		Species:      1,
		CantusFirmus: []string{"C4", "D4"},
		Counterpoint: []string{"G4", "A4"},
	}, RequestMeta{RequestID: "r2"})
	require.NoError(t, err)

	_, err = svc.Validate(ctx, models.ValidateRequest{
		Species:      1,
		CantusSlug:   "nope",
		Counterpoint: []string{"C5"},
	}, RequestMeta{})
	assert.True(t, errors.Is(err, ErrCantusNotFound))

	var ierr *InputError
	_, err = svc.Validate(ctx, models.ValidateRequest{Species: 1, Counterpoint: []string{"C5"}}, RequestMeta{})
	assert.True(t, errors.As(err, &ierr))

	_, err = svc.Validate(ctx, models.ValidateRequest{
		Species:      1,
		CantusSlug:   "short-c-major",
		CantusFirmus: []string{"C4"},
		Counterpoint: []string{"C5"},
	}, RequestMeta{})
	assert.True(t, errors.As(err, &ierr))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Valid)
	assert.Equal(t, int64(2), stats.BySpecies[1])
	require.Len(t, stats.TopCantus, 1)
	assert.Equal(t, "short-c-major", stats.TopCantus[0].Slug)
	assert.Equal(t, int64(1), stats.TopCantus[0].Count)
	assert.Greater(t, stats.AvgScore, 0.0)
}

func TestValidationService_EmptyStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewValidationService(db, NewCantusService(db), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Empty(t, stats.BySpecies)
}
