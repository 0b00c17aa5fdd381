package storefront_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/storefront"
	storefrontmocks "storefront_back_end/internal/storefront/mocks"
)

func line(id string, qty int) models.CartItem {
	return models.CartItem{
		ID:              id,
		ProductID:       "p-" + id,
		Name:            "T-shirt",
		UnitPrice:       decimal.NewFromInt(500),
		DiscountPerUnit: decimal.NewFromInt(100),
		Quantity:        qty,
		Size:            "M",
	}
}

func loadedCart(t *testing.T, api *storefrontmocks.MockAPI, items ...models.CartItem) *storefront.CartStore {
	api.EXPECT().FetchCart(gomock.Any()).Return(items, nil)
	cart := storefront.NewCartStore(api)
	require.NoError(t, cart.Load(context.Background()))
	return cart
}

func flush(t *testing.T, cart *storefront.CartStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, cart.Flush(ctx))
}

func TestCartStore_QuantityStaysInBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("c1", 5))
	api.EXPECT().ChangeQuantity(gomock.Any(), "c1", gomock.Any()).Return(models.CartItem{}, nil).AnyTimes()

	ctx := context.Background()
	// 8 montées, 12 descentes, 15 montées : on passe par les deux bornes
	steps := make([]int, 0, 35)
	for i := 0; i < 8; i++ {
		steps = append(steps, 1)
	}
	for i := 0; i < 12; i++ {
		steps = append(steps, -1)
	}
	for i := 0; i < 15; i++ {
		steps = append(steps, 1)
	}
	for _, step := range steps {
		if step > 0 {
			require.NoError(t, cart.IncreaseQuantity(ctx, "c1"))
		} else {
			require.NoError(t, cart.DecreaseQuantity(ctx, "c1"))
		}
		q := cart.Items()[0].Quantity
		assert.GreaterOrEqual(t, q, models.MinQuantity)
		assert.LessOrEqual(t, q, models.MaxQuantity)
	}
	flush(t, cart)
	assert.Equal(t, models.MaxQuantity, cart.Items()[0].Quantity)
}

func TestCartStore_BoundaryIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("min", 1), line("max", 10))
	// aucun ChangeQuantity attendu

	ctx := context.Background()
	require.NoError(t, cart.DecreaseQuantity(ctx, "min"))
	require.NoError(t, cart.IncreaseQuantity(ctx, "max"))
	flush(t, cart)

	items := cart.Items()
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 10, items[1].Quantity)
	assert.ErrorIs(t, cart.IncreaseQuantity(ctx, "nope"), storefront.ErrUnknownItem)
}

func TestCartStore_MutationsSerializedPerItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("c1", 3))

	var inFlight, maxInFlight int32
	slow := func(ctx context.Context, itemID string, change int) (models.CartItem, error) {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&maxInFlight) {
			atomic.StoreInt32(&maxInFlight, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return models.CartItem{}, nil
	}
	gomock.InOrder(
		api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).DoAndReturn(slow),
		api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).DoAndReturn(slow),
		api.EXPECT().ChangeQuantity(gomock.Any(), "c1", -1).DoAndReturn(slow),
		api.EXPECT().RemoveCartItem(gomock.Any(), "c1").Return(nil),
	)

	ctx := context.Background()
	require.NoError(t, cart.IncreaseQuantity(ctx, "c1"))
	require.NoError(t, cart.IncreaseQuantity(ctx, "c1"))
	require.NoError(t, cart.DecreaseQuantity(ctx, "c1"))
	require.NoError(t, cart.RemoveItem(ctx, "c1"))
	assert.Empty(t, cart.Items())

	flush(t, cart)
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestCartStore_ServerQuantityWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("c1", 3))
	api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).Return(line("c1", 7), nil)

	require.NoError(t, cart.IncreaseQuantity(context.Background(), "c1"))
	flush(t, cart)
	assert.Equal(t, 7, cart.Items()[0].Quantity)
}

func TestCartStore_FailureTriggersReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)

	var (
		mu       sync.Mutex
		reported []error
	)
	api.EXPECT().FetchCart(gomock.Any()).Return([]models.CartItem{line("c1", 3), line("c2", 1)}, nil)
	cart := storefront.NewCartStore(api, storefront.WithErrorHandler(func(err error) {
		mu.Lock()
		reported = append(reported, err)
		mu.Unlock()
	}))
	require.NoError(t, cart.Load(context.Background()))

	boom := &storefront.RemoteError{Status: 500, Message: "Erreur serveur"}
	api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).Return(models.CartItem{}, boom)
	api.EXPECT().RemoveCartItem(gomock.Any(), "c2").Return(nil)
	// état serveur après l'échec : c1 inchangé, c2 supprimé
	api.EXPECT().FetchCart(gomock.Any()).Return([]models.CartItem{line("c1", 3)}, nil)

	ctx := context.Background()
	require.NoError(t, cart.IncreaseQuantity(ctx, "c1"))
	require.NoError(t, cart.RemoveItem(ctx, "c2"))
	assert.Equal(t, 4, cart.Items()[0].Quantity)

	flush(t, cart)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	select {
	case err := <-cart.Errors():
		var rerr *storefront.RemoteError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, 500, rerr.Status)
	default:
		t.Fatal("erreur de synchronisation non signalée")
	}
	mu.Lock()
	assert.Len(t, reported, 1)
	mu.Unlock()
}

func TestCartStore_AddItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("c1", 1))
	ctx := context.Background()

	t.Run("échec : rien n'apparaît en local", func(t *testing.T) {
		api.EXPECT().AddCartItem(gomock.Any(), storefront.AddItemRequest{ProductID: "p-c2"}).
			Return(models.CartItem{}, &storefront.RemoteError{Status: 404, Message: "Produit introuvable"})
		_, err := cart.AddItem(ctx, storefront.AddItemRequest{ProductID: "p-c2"})
		assert.Error(t, err)
		assert.Len(t, cart.Items(), 1)
	})

	t.Run("nouvelle ligne avec l'ID serveur", func(t *testing.T) {
		api.EXPECT().AddCartItem(gomock.Any(), storefront.AddItemRequest{ProductID: "p-c2", Size: "M"}).
			Return(line("c2", 1), nil)
		item, err := cart.AddItem(ctx, storefront.AddItemRequest{ProductID: "p-c2", Size: "M"})
		require.NoError(t, err)
		assert.Equal(t, "c2", item.ID)
		assert.Len(t, cart.Items(), 2)
	})

	t.Run("même produit et taille : ligne fusionnée", func(t *testing.T) {
		api.EXPECT().AddCartItem(gomock.Any(), storefront.AddItemRequest{ProductID: "p-c1", Size: "M"}).
			Return(line("c1", 2), nil)
		_, err := cart.AddItem(ctx, storefront.AddItemRequest{ProductID: "p-c1", Size: "M"})
		require.NoError(t, err)
		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, 2, items[0].Quantity)
	})

	totals := cart.Totals()
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.True(t, decimal.NewFromInt(1220).Equal(totals.FinalAmount))
}

func TestCartStore_ClearAndTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api, line("c1", 2))

	assert.True(t, decimal.NewFromInt(820).Equal(cart.Totals().FinalAmount))
	cart.Clear()
	assert.Empty(t, cart.Items())
	totals := cart.Totals()
	assert.True(t, totals.FinalAmount.IsZero())
	assert.True(t, totals.PlatformFee.IsZero())
}

func TestCartStore_FlushWaitsForAddItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	cart := loadedCart(t, api)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().AddCartItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, storefront.AddItemRequest) (models.CartItem, error) {
			close(started)
			<-release
			return line("c1", 1), nil
		})

	added := make(chan error, 1)
	go func() {
		_, err := cart.AddItem(context.Background(), storefront.AddItemRequest{ProductID: "p-c1", Size: "M", Quantity: 1})
		added <- err
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, cart.Flush(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-added)
	flush(t, cart)
	assert.Len(t, cart.Items(), 1)
}
