package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/estate-service/internal/repository"
)

func TestFavoriteService_AddRemoveAreIdempotent(t *testing.T) {
	properties := newFakePropertyStore()
	favorites := newFakeFavoriteStore()
	s := NewFavoriteService(favorites, properties)
	ctx := context.Background()

	p, err := NewPropertyService(properties).Create(ctx, userActor, propertyInput("2BHK", "Pune", 5000000))
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, "u2", p.PropertyID))
	require.NoError(t, s.Add(ctx, "u2", p.PropertyID))
	list, err := s.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Remove(ctx, "u2", p.PropertyID))
	require.NoError(t, s.Remove(ctx, "u2", p.PropertyID))
	list, err = s.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFavoriteService_Toggle(t *testing.T) {
	properties := newFakePropertyStore()
	s := NewFavoriteService(newFakeFavoriteStore(), properties)
	ctx := context.Background()

	p, err := NewPropertyService(properties).Create(ctx, userActor, propertyInput("2BHK", "Pune", 5000000))
	require.NoError(t, err)

	status, err := s.Toggle(ctx, "u2", p.PropertyID)
	require.NoError(t, err)
	assert.True(t, status.Favorite)

	status, err = s.IsFavorite(ctx, "u2", p.PropertyID)
	require.NoError(t, err)
	assert.True(t, status.Favorite)

	status, err = s.Toggle(ctx, "u2", p.PropertyID)
	require.NoError(t, err)
	assert.False(t, status.Favorite)
}

func TestFavoriteService_AddRequiresActiveProperty(t *testing.T) {
	properties := newFakePropertyStore()
	s := NewFavoriteService(newFakeFavoriteStore(), properties)
	ctx := context.Background()

	assert.ErrorIs(t, s.Add(ctx, "u2", "missing"), repository.ErrNotFound)

	ps := NewPropertyService(properties)
	p, err := ps.Create(ctx, userActor, propertyInput("2BHK", "Pune", 5000000))
	require.NoError(t, err)
	require.NoError(t, ps.Delete(ctx, userActor, p.PropertyID))

	assert.ErrorIs(t, s.Add(ctx, "u2", p.PropertyID), repository.ErrNotFound)
}

func TestFavoriteService_ListSkipsInactiveNewestFirst(t *testing.T) {
	properties := newFakePropertyStore()
	s := NewFavoriteService(newFakeFavoriteStore(), properties)
	ps := NewPropertyService(properties)
	ctx := context.Background()

	first, err := ps.Create(ctx, userActor, propertyInput("First", "Pune", 1))
	require.NoError(t, err)
	second, err := ps.Create(ctx, userActor, propertyInput("Second", "Pune", 1))
	require.NoError(t, err)
	gone, err := ps.Create(ctx, userActor, propertyInput("Gone", "Pune", 1))
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, "u2", first.PropertyID))
	require.NoError(t, s.Add(ctx, "u2", gone.PropertyID))
	require.NoError(t, s.Add(ctx, "u2", second.PropertyID))
	require.NoError(t, ps.Delete(ctx, userActor, gone.PropertyID))

	list, err := s.List(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)
	assert.Equal(t, "First", list[1].Title)
}
