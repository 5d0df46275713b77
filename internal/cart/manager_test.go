package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/domain"
	"github.com/reservekit/reserve-client/internal/storage"
)

var (
	storeA = domain.StoreRef{StoreID: "store-a", Name: "Alpha Diner"}
	storeB = domain.StoreRef{StoreID: "store-b", Name: "Beta Grill"}

	pasta = domain.Menu{MenuID: "menu-pasta", StoreID: "store-a", Name: "Pasta", Price: 10}
	pizza = domain.Menu{MenuID: "menu-pizza", StoreID: "store-a", Name: "Pizza", Price: 12}
	sushi = domain.Menu{MenuID: "menu-sushi", StoreID: "store-b", Name: "Sushi", Price: 20}
)

func newTestManager(t *testing.T) (*Manager, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewManager(mem, zap.NewNop()), mem
}

func TestAddItemSetsStore(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))

	cart := m.Cart()
	require.NotNil(t, cart.Store)
	assert.Equal(t, storeA, *cart.Store)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "menu-pasta", cart.Items[0].MenuID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddSameItemTwiceIsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	first := m.Cart()
	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))

	assert.Equal(t, first, m.Cart())
}

func TestAddExistingItemReplacesQuantity(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.AddOrSetItem(storeA, pasta, 5))

	cart := m.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddFromDifferentStoreReplacesCart(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.AddOrSetItem(storeA, pizza, 1))
	require.NoError(t, m.AddOrSetItem(storeB, sushi, 3))

	cart := m.Cart()
	require.NotNil(t, cart.Store)
	assert.Equal(t, storeB, *cart.Store)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "menu-sushi", cart.Items[0].MenuID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddZeroQuantityRemovesItem(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.AddOrSetItem(storeA, pizza, 1))
	require.NoError(t, m.AddOrSetItem(storeA, pasta, 0))

	cart := m.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "menu-pizza", cart.Items[0].MenuID)
}

func TestAddZeroQuantityOfAbsentItemIsNoOp(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 0))
	assert.True(t, m.Cart().Empty())
	assert.Nil(t, m.Cart().Store)

	// Same for a different-store menu while the cart is occupied.
	require.NoError(t, m.AddOrSetItem(storeA, pasta, 1))
	require.NoError(t, m.AddOrSetItem(storeB, sushi, 0))
	cart := m.Cart()
	require.NotNil(t, cart.Store)
	assert.Equal(t, storeA, *cart.Store)
}

func TestAddNegativeQuantityRejected(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Error(t, m.AddOrSetItem(storeA, pasta, -1))
}

func TestRemovingLastItemClearsStore(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.RemoveItem(0))

	cart := m.Cart()
	assert.True(t, cart.Empty())
	assert.Nil(t, cart.Store)
}

func TestUpdateItemQuantity(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.AddOrSetItem(storeA, pizza, 1))

	require.NoError(t, m.UpdateItemQuantity(1, 4))
	assert.Equal(t, 4, m.Cart().Items[1].Quantity)

	// Quantity zero behaves like removal.
	require.NoError(t, m.UpdateItemQuantity(0, 0))
	cart := m.Cart()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "menu-pizza", cart.Items[0].MenuID)
}

func TestStaleIndexReturnsError(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))

	assert.ErrorIs(t, m.UpdateItemQuantity(3, 1), ErrItemIndexOutOfRange)
	assert.ErrorIs(t, m.RemoveItem(-1), ErrItemIndexOutOfRange)
	assert.ErrorIs(t, m.RemoveItem(1), ErrItemIndexOutOfRange)
}

func TestTotal(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 1)) // 10
	require.NoError(t, m.AddOrSetItem(storeA, pizza, 1)) // 12
	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2)) // replaces to 20

	assert.Equal(t, 32, m.Total())
}

func TestClear(t *testing.T) {
	m, mem := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, m.Clear())

	cart := m.Cart()
	assert.True(t, cart.Empty())
	assert.Nil(t, cart.Store)

	// The cleared cart is what a fresh manager loads.
	fresh := NewManager(mem, zap.NewNop())
	assert.True(t, fresh.Cart().Empty())
}

func TestCartSurvivesRestart(t *testing.T) {
	mem := storage.NewMemory()

	first := NewManager(mem, zap.NewNop())
	require.NoError(t, first.AddOrSetItem(storeA, pasta, 2))
	require.NoError(t, first.AddOrSetItem(storeA, pizza, 1))

	second := NewManager(mem, zap.NewNop())
	cart := second.Cart()
	require.NotNil(t, cart.Store)
	assert.Equal(t, storeA, *cart.Store)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 32, second.Total())
}

func TestUndecodablePersistedCartStartsEmpty(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(storage.KeyCart, "not json"))

	m := NewManager(mem, zap.NewNop())
	assert.True(t, m.Cart().Empty())
}

func TestPersistedCartWithItemsButNoStoreStartsEmpty(t *testing.T) {
	mem := storage.NewMemory()
	orphan := `{"items":[{"menuId":"menu-pasta","name":"Pasta","price":10,"quantity":2}]}`
	require.NoError(t, mem.Set(storage.KeyCart, orphan))

	m := NewManager(mem, zap.NewNop())
	cart := m.Cart()
	assert.True(t, cart.Empty())
	assert.Nil(t, cart.Store)

	// The orphan items must not be merged into the next selection.
	require.NoError(t, m.AddOrSetItem(storeB, sushi, 1))
	cart = m.Cart()
	require.NotNil(t, cart.Store)
	assert.Equal(t, storeB, *cart.Store)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "menu-sushi", cart.Items[0].MenuID)
}

func TestCartReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.AddOrSetItem(storeA, pasta, 2))
	cart := m.Cart()
	cart.Items[0].Quantity = 99

	assert.Equal(t, 2, m.Cart().Items[0].Quantity)
}
