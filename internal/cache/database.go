package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinetrack/cinetrack/internal/models"
)

// DatabaseStore persists cache entries in the primary database. It is the
// fallback when no Redis server is configured and keeps single-binary
// deployments self-contained.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps the given database handle.
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &DatabaseStore{db: db}, nil
}

// Get implements Store. Expired rows are deleted lazily on read.
func (s *DatabaseStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.CacheEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		_ = s.db.WithContext(ctx).Delete(&models.CacheEntry{}, "key = ?", key).Error
		return nil, false, nil
	}

	return entry.Value, true, nil
}

// Set implements Store.
func (s *DatabaseStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := models.CacheEntry{Key: key, Value: value}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		entry.ExpiresAt = &expires
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

// Delete implements Store.
func (s *DatabaseStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.CacheEntry{}, "key = ?", key).Error
}

// DeleteMatching implements Store. Glob wildcards are translated to SQL
// LIKE wildcards; literal percent signs in keys are escaped first.
func (s *DatabaseStore) DeleteMatching(ctx context.Context, pattern string) (int64, error) {
	like := globToLike(pattern)
	result := s.db.WithContext(ctx).Where("key LIKE ? ESCAPE '\\'", like).Delete(&models.CacheEntry{})
	return result.RowsAffected, result.Error
}

// Clear implements Store.
func (s *DatabaseStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.CacheEntry{}).Error
}

// IncrementWithTTL implements Store using a transaction so concurrent
// callers observe a consistent counter.
func (s *DatabaseStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.CacheEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&entry, "key = ?", key).Error

		now := time.Now()
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			count = 1
		case err != nil:
			return err
		case entry.ExpiresAt != nil && now.After(*entry.ExpiresAt):
			count = 1
		default:
			parsed, perr := parseCounter(entry.Value)
			if perr != nil {
				return perr
			}
			count = parsed + 1
		}

		fresh := models.CacheEntry{Key: key, Value: formatCounter(count)}
		if count == 1 && ttl > 0 {
			expires := now.Add(ttl)
			fresh.ExpiresAt = &expires
		} else if count > 1 {
			fresh.ExpiresAt = entry.ExpiresAt
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).Create(&fresh).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Close implements Store. The underlying database is owned by the caller.
func (s *DatabaseStore) Close() error {
	return nil
}

// PurgeExpired removes expired rows and reports how many were deleted.
// It is called periodically by the maintenance cleaner.
func (s *DatabaseStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&models.CacheEntry{})
	return result.RowsAffected, result.Error
}

func globToLike(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseCounter(value []byte) (int64, error) {
	n, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, errors.New("cache entry does not hold a counter")
	}
	return n, nil
}

func formatCounter(n int64) []byte {
	return []byte(strconv.FormatInt(n, 10))
}
