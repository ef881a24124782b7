package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/cache"
	"github.com/cinetrack/cinetrack/internal/database/testutil"
	"github.com/cinetrack/cinetrack/internal/models"
)

func TestRunOncePurgesExpiredEntries(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store, err := cache.NewDatabaseStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "stale", []byte("x"), time.Millisecond))
	require.NoError(t, store.Set(ctx, "fresh", []byte("y"), time.Hour))
	time.Sleep(5 * time.Millisecond)

	cleaner := NewCleaner(store)
	require.NoError(t, cleaner.RunOnce(ctx))

	var remaining int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)
}

func TestRunOnceWithoutStoreIsNoop(t *testing.T) {
	cleaner := NewCleaner(nil)
	require.NoError(t, cleaner.RunOnce(context.Background()))
	require.NoError(t, cleaner.Start())
}
