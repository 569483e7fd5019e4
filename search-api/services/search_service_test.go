package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrental/properties-api/domain"
	"roomrental/search-api/dto"
)

type mockIndexRepository struct {
	properties  map[uint]domain.Property
	searchCalls int
}

func newMockIndexRepository() *mockIndexRepository {
	return &mockIndexRepository{properties: make(map[uint]domain.Property)}
}

func (m *mockIndexRepository) Search(ctx context.Context, request dto.SearchRequest) ([]domain.Property, int, error) {
	m.searchCalls++
	var out []domain.Property
	for _, p := range m.properties {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockIndexRepository) Index(ctx context.Context, property domain.Property) error {
	m.properties[property.ID] = property
	return nil
}

func (m *mockIndexRepository) Delete(ctx context.Context, propertyID uint) error {
	delete(m.properties, propertyID)
	return nil
}

type mockCacheRepository struct {
	entries map[string]cachedEntry
	flushes int
}

type cachedEntry struct {
	properties []domain.Property
	total      int
}

func newMockCacheRepository() *mockCacheRepository {
	return &mockCacheRepository{entries: make(map[string]cachedEntry)}
}

func (m *mockCacheRepository) Get(key string) ([]domain.Property, int, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return nil, 0, false
	}
	return entry.properties, entry.total, true
}

func (m *mockCacheRepository) Set(key string, properties []domain.Property, total int) {
	m.entries[key] = cachedEntry{properties: properties, total: total}
}

func (m *mockCacheRepository) Flush() {
	m.entries = make(map[string]cachedEntry)
	m.flushes++
}

func newTestSearchService(index *mockIndexRepository, cache *mockCacheRepository) SearchService {
	return NewSearchService(index, cache, "http://localhost:8081", zerolog.Nop())
}

func TestSearch_CacheMissThenHit(t *testing.T) {
	index := newMockIndexRepository()
	cache := newMockCacheRepository()
	svc := newTestSearchService(index, cache)

	require.NoError(t, index.Index(context.Background(), domain.Property{ID: 1, Title: "Downtown loft", City: "Boston"}))

	request := dto.SearchRequest{City: "Boston"}

	// The miss queries the index and fills the cache.
	response, err := svc.Search(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 1, response.TotalResults)
	assert.Equal(t, 1, index.searchCalls)

	// The repeat is served from the cache.
	response, err = svc.Search(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 1, response.TotalResults)
	assert.Equal(t, 1, index.searchCalls)
}

func TestSearch_AppliesDefaults(t *testing.T) {
	index := newMockIndexRepository()
	cache := newMockCacheRepository()
	svc := newTestSearchService(index, cache)

	response, err := svc.Search(context.Background(), dto.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, response.Page)
	assert.Equal(t, 10, response.PageSize)
}

func TestSearch_TotalPagesRoundsUp(t *testing.T) {
	index := newMockIndexRepository()
	cache := newMockCacheRepository()
	svc := newTestSearchService(index, cache)

	for id := uint(1); id <= 12; id++ {
		require.NoError(t, index.Index(context.Background(), domain.Property{ID: id, City: "Boston"}))
	}

	response, err := svc.Search(context.Background(), dto.SearchRequest{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, response.TotalResults)
	assert.Equal(t, 3, response.TotalPages)
}

func TestIndexProperty_FlushesCache(t *testing.T) {
	index := newMockIndexRepository()
	cache := newMockCacheRepository()
	svc := newTestSearchService(index, cache)

	_, err := svc.Search(context.Background(), dto.SearchRequest{City: "Boston"})
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)

	err = svc.IndexProperty(context.Background(), domain.Property{ID: 5, City: "Boston"})
	require.NoError(t, err)
	assert.Empty(t, cache.entries)
	assert.Equal(t, 1, cache.flushes)
}

func TestIndexProperty_RejectsZeroID(t *testing.T) {
	svc := newTestSearchService(newMockIndexRepository(), newMockCacheRepository())

	err := svc.IndexProperty(context.Background(), domain.Property{})
	assert.Error(t, err)
}

func TestDeleteProperty_FlushesCache(t *testing.T) {
	index := newMockIndexRepository()
	cache := newMockCacheRepository()
	svc := newTestSearchService(index, cache)

	require.NoError(t, index.Index(context.Background(), domain.Property{ID: 9}))

	err := svc.DeleteProperty(context.Background(), 9)
	require.NoError(t, err)
	assert.NotContains(t, index.properties, uint(9))
	assert.Equal(t, 1, cache.flushes)
}
