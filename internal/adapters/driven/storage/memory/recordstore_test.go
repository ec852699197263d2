package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

func customer(id, name, city string) domain.Record {
	return domain.Record{
		ID:     id,
		Kind:   domain.KindCustomer,
		Fields: map[string]any{"name": name, "city": city},
	}
}

func TestNewRecordStore(t *testing.T) {
	store := NewRecordStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)
}

func TestRecordStore_Save_Get(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, customer("c1", "Acme", "Leeds")))

	got, err := store.Get(ctx, domain.KindCustomer, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name())
	assert.Equal(t, "Leeds", got.Fields["city"])
}

func TestRecordStore_Get_NotFound(t *testing.T) {
	store := NewRecordStore()

	_, err := store.Get(context.Background(), domain.KindCustomer, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_Get_KindScoped(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("1", "Acme", "")))

	_, err := store.Get(ctx, domain.KindItem, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordStore_Get_ReturnsCopy(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("c1", "Acme", "Leeds")))

	got, err := store.Get(ctx, domain.KindCustomer, "c1")
	require.NoError(t, err)
	got.Fields["name"] = "Changed"

	again, err := store.Get(ctx, domain.KindCustomer, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.Name())
}

func TestRecordStore_Delete(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("c1", "Acme", "")))

	require.NoError(t, store.Delete(ctx, domain.KindCustomer, "c1"))

	_, err := store.Get(ctx, domain.KindCustomer, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, domain.KindCustomer, "c1"), domain.ErrNotFound)
}

func TestRecordStore_List_SortedByName(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("3", "charlie", "")))
	require.NoError(t, store.Save(ctx, customer("1", "Alpha", "")))
	require.NoError(t, store.Save(ctx, customer("2", "bravo", "")))
	require.NoError(t, store.Save(ctx, domain.Record{
		ID: "x", Kind: domain.KindColor, Fields: map[string]any{"name": "Red"},
	}))

	records, err := store.List(ctx, domain.KindCustomer)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Alpha", records[0].Name())
	assert.Equal(t, "bravo", records[1].Name())
	assert.Equal(t, "charlie", records[2].Name())
}

func TestRecordStore_Search_Pagination(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		require.NoError(t, store.Save(ctx, customer(fmt.Sprintf("%02d", i), fmt.Sprintf("Customer %02d", i), "")))
	}

	page1, err := store.Search(ctx, domain.PageRequest{Kind: domain.KindCustomer, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page1, 10)
	assert.Equal(t, "Customer 00", page1[0].Name())

	page3, err := store.Search(ctx, domain.PageRequest{Kind: domain.KindCustomer, Page: 3, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page3, 5)
	assert.Equal(t, "Customer 20", page3[0].Name())

	page4, err := store.Search(ctx, domain.PageRequest{Kind: domain.KindCustomer, Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, page4)
	assert.Empty(t, page4)
}

func TestRecordStore_Search_FarPage(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("01", "Acme", "")))
	require.NoError(t, store.Save(ctx, customer("02", "Bolt", "")))

	far, err := store.Search(ctx, domain.PageRequest{Kind: domain.KindCustomer, Page: math.MaxInt, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, far)
	assert.Empty(t, far)

	wide, err := store.Search(ctx, domain.PageRequest{Kind: domain.KindCustomer, Page: 1, PageSize: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, wide, 2)
}

func TestRecordStore_Search_FiltersBySearchFields(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, customer("1", "Acme", "Leeds")))
	require.NoError(t, store.Save(ctx, customer("2", "Bolt", "York")))
	require.NoError(t, store.Save(ctx, customer("3", "Leeds Traders", "Hull")))

	records, err := store.Search(ctx, domain.PageRequest{
		Kind:         domain.KindCustomer,
		Page:         1,
		PageSize:     10,
		Search:       "LEEDS",
		SearchFields: []string{"city"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].ID)
}

func TestRecordStore_ConcurrentAccess(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Save(ctx, customer(fmt.Sprint(n), fmt.Sprint("name", n), ""))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.List(ctx, domain.KindCustomer)
		}()
	}
	wg.Wait()

	records, err := store.List(ctx, domain.KindCustomer)
	require.NoError(t, err)
	assert.Len(t, records, 50)
}
