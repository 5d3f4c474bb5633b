package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/autonomeal/backend/internal/testhelpers"
)

func setupExperienceDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	createTable := `CREATE TABLE user_experiences (
        id TEXT PRIMARY KEY,
        created_at DATETIME,
        updated_at DATETIME,
        deleted_at DATETIME,
        user_id TEXT NOT NULL UNIQUE,
        points INTEGER NOT NULL DEFAULT 0
    );`
	if err := db.Exec(createTable).Error; err != nil {
		t.Fatalf("failed to create user_experiences table: %v", err)
	}
	return db
}

func TestExperienceService(t *testing.T) {
	ctx := context.Background()

	t.Run("first award creates the record", func(t *testing.T) {
		svc := NewExperienceService(setupExperienceDB(t))
		userID := uuid.New()

		require.NoError(t, svc.AwardPoints(ctx, userID, RecipeGenerationPoints))

		points, err := svc.GetPoints(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, RecipeGenerationPoints, points)
	})

	t.Run("awards accumulate", func(t *testing.T) {
		svc := NewExperienceService(setupExperienceDB(t))
		userID := uuid.New()

		require.NoError(t, svc.AwardPoints(ctx, userID, 10))
		require.NoError(t, svc.AwardPoints(ctx, userID, 5))

		points, err := svc.GetPoints(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 15, points)
	})

	t.Run("unknown user has zero points", func(t *testing.T) {
		svc := NewExperienceService(setupExperienceDB(t))

		points, err := svc.GetPoints(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 0, points)
	})
}

func TestExperienceServicePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS user_experiences (
        id UUID PRIMARY KEY,
        created_at TIMESTAMPTZ,
        updated_at TIMESTAMPTZ,
        deleted_at TIMESTAMPTZ,
        user_id UUID NOT NULL UNIQUE,
        points INTEGER NOT NULL DEFAULT 0
    );`).Error)

	svc := NewExperienceService(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.AwardPoints(ctx, userID, 10))
	require.NoError(t, svc.AwardPoints(ctx, userID, 10))

	points, err := svc.GetPoints(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 20, points)
}
