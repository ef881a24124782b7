package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cinetrack/cinetrack/internal/models"
	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
)

func TestCustomListLifecycle(t *testing.T) {
	db := openDB(t)
	svc, err := NewCustomListService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	list, err := svc.Create(ctx, &models.CustomList{UserID: user.ID, Name: "Best Dramas"})
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, user.ID, list.ID, &models.CustomListItem{ContentID: content.ID, Note: "must watch"})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, user.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.Equal(t, "must watch", loaded.Items[0].Note)

	require.NoError(t, svc.RemoveItem(ctx, user.ID, list.ID, item.ID))
	require.NoError(t, svc.Delete(ctx, user.ID, list.ID))

	_, err = svc.Get(ctx, user.ID, list.ID)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)
}

func TestCustomListDuplicateItem(t *testing.T) {
	db := openDB(t)
	svc, err := NewCustomListService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	content := createTestContent(t, db, "Some Show", models.ContentTypeSeries, 42)

	list, err := svc.Create(ctx, &models.CustomList{UserID: user.ID, Name: "Favourites"})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, user.ID, list.ID, &models.CustomListItem{ContentID: content.ID})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, list.ID, &models.CustomListItem{ContentID: content.ID})
	require.Error(t, err)
	require.Equal(t, "Content already in list", apperrors.FromError(err).Message)
}

func TestPublicListVisibility(t *testing.T) {
	db := openDB(t)
	svc, err := NewCustomListService(db)
	require.NoError(t, err)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	private, err := svc.Create(ctx, &models.CustomList{UserID: alice.ID, Name: "Private"})
	require.NoError(t, err)
	public, err := svc.Create(ctx, &models.CustomList{UserID: alice.ID, Name: "Public", IsPublic: true})
	require.NoError(t, err)

	// Bob can read the public list but not the private one.
	_, err = svc.Get(ctx, bob.ID, public.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, bob.ID, private.ID)
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)

	// Neither is writable by Bob.
	_, err = svc.Update(ctx, bob.ID, public.ID, CustomListUpdate{Name: "Hijacked"})
	require.Equal(t, 404, apperrors.FromError(err).StatusCode)

	publicLists, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, publicLists, 1)
	require.Equal(t, "Public", publicLists[0].Name)
}

func TestListForUserFiltersVisibility(t *testing.T) {
	db := openDB(t)
	svc, err := NewCustomListService(db)
	require.NoError(t, err)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	_, err = svc.Create(ctx, &models.CustomList{UserID: user.ID, Name: "Private"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.CustomList{UserID: user.ID, Name: "Shared", IsPublic: true})
	require.NoError(t, err)

	all, err := svc.ListForUser(ctx, user.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	isPublic := true
	shared, err := svc.ListForUser(ctx, user.ID, &isPublic)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	require.Equal(t, "Shared", shared[0].Name)
}
