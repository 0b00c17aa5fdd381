package storefront_test

import (
	"context"
	"errors"
	"fmt"
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

var delivery = models.DeliveryInfo{FullName: "Asha Rao", Address: "12 MG Road, Pune", Phone: "9876543210"}

type checkoutFixture struct {
	api     *storefrontmocks.MockAPI
	widget  *storefrontmocks.MockPaymentWidget
	cart    *storefront.CartStore
	session *storefront.CheckoutSession
}

func newCheckout(t *testing.T, items ...models.CartItem) checkoutFixture {
	ctrl := gomock.NewController(t)
	api := storefrontmocks.NewMockAPI(ctrl)
	widget := storefrontmocks.NewMockPaymentWidget(ctrl)
	cart := loadedCart(t, api, items...)
	return checkoutFixture{
		api:     api,
		widget:  widget,
		cart:    cart,
		session: storefront.NewCheckoutSession(api, cart, storefront.NewSession(api), widget),
	}
}

func TestCheckout_InvalidDeliveryNeverCallsNetwork(t *testing.T) {
	testCases := []struct {
		name       string
		delivery   models.DeliveryInfo
		method     models.PaymentMethod
		wantFields []string
	}{
		{name: "nom vide", delivery: models.DeliveryInfo{Address: "a", Phone: "1"}, method: models.PaymentCOD, wantFields: []string{"fullName"}},
		{name: "adresse en espaces", delivery: models.DeliveryInfo{FullName: "A", Address: "   ", Phone: "1"}, method: models.PaymentOnline, wantFields: []string{"address"}},
		{name: "tout vide", method: models.PaymentCOD, wantFields: []string{"fullName", "address", "phone"}},
		{name: "moyen de paiement inconnu", delivery: delivery, method: "CARD", wantFields: []string{"paymentMethod"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// aucune attente sur l'API : tout appel ferait échouer le test
			f := newCheckout(t, line("c1", 1))

			orderID, err := f.session.PlaceOrder(context.Background(), tc.method, tc.delivery)
			assert.Empty(t, orderID)
			var verr *storefront.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.wantFields, verr.Fields)
			assert.Equal(t, storefront.StateIdle, f.session.State())
			assert.Len(t, f.cart.Items(), 1)
		})
	}
}

func TestCheckout_COD(t *testing.T) {
	t.Run("succès : Completed et panier vidé", func(t *testing.T) {
		f := newCheckout(t, line("c1", 2))
		f.api.EXPECT().PlaceOrder(gomock.Any(), storefront.PlaceOrderRequest{
			Items:         []models.CartItem{line("c1", 2)},
			PaymentMethod: models.PaymentCOD,
			DeliveryInfo:  delivery,
		}).Return("abc123", nil)

		orderID, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
		require.NoError(t, err)
		assert.Equal(t, "abc123", orderID)
		assert.Equal(t, storefront.StateCompleted, f.session.State())
		assert.Equal(t, "abc123", f.session.OrderID())
		assert.Empty(t, f.cart.Items())

		f.session.Reset()
		assert.Equal(t, storefront.StateIdle, f.session.State())
		assert.Empty(t, f.session.OrderID())
	})

	t.Run("échec : Idle et panier conservé", func(t *testing.T) {
		f := newCheckout(t, line("c1", 2))
		f.api.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return("", &storefront.RemoteError{Status: 409, Message: "le panier a changé"})

		_, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
		var rerr *storefront.RemoteError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, 409, rerr.Status)
		assert.Equal(t, storefront.StateIdle, f.session.State())
		assert.Equal(t, err, f.session.LastError())
		assert.Len(t, f.cart.Items(), 1)
	})

	t.Run("panier vide", func(t *testing.T) {
		f := newCheckout(t)
		_, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
		assert.ErrorIs(t, err, storefront.ErrEmptyCart)
	})
}

func TestCheckout_COD_FlushesPendingMutations(t *testing.T) {
	f := newCheckout(t, line("c1", 1))
	gomock.InOrder(
		f.api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).
			DoAndReturn(func(context.Context, string, int) (models.CartItem, error) {
				time.Sleep(10 * time.Millisecond)
				return line("c1", 2), nil
			}),
		f.api.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req storefront.PlaceOrderRequest) (string, error) {
				assert.Equal(t, 2, req.Items[0].Quantity)
				return "o1", nil
			}),
	)

	require.NoError(t, f.cart.IncreaseQuantity(context.Background(), "c1"))
	orderID, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
	require.NoError(t, err)
	assert.Equal(t, "o1", orderID)
}

// amountEq compare des montants décimaux quelle que soit leur échelle
type amountEq int64

func (a amountEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(decimal.NewFromInt(int64(a)))
}

func (a amountEq) String() string {
	return fmt.Sprintf("montant = %d", int64(a))
}

func paymentOrder() storefront.PaymentOrder {
	return storefront.PaymentOrder{
		ID: "pi_1", ClientSecret: "pi_1_secret", Amount: decimal.NewFromInt(420),
		Currency: "inr", PublicKey: "pk_test",
	}
}

func TestCheckout_Online(t *testing.T) {
	user := models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}
	confirmation := &storefront.PaymentConfirmation{PaymentOrderID: "pi_1", ClientSecret: "pi_1_secret"}

	testCases := []struct {
		name      string
		before    func(f checkoutFixture)
		wantOrder string
		wantState storefront.CheckoutState
		wantErr   func(t *testing.T, err error)
		wantCart  int
	}{
		{
			name: "paiement vérifié",
			before: func(f checkoutFixture) {
				f.api.EXPECT().CreatePaymentOrder(gomock.Any(), amountEq(420)).Return(paymentOrder(), nil)
				f.api.EXPECT().CurrentUser(gomock.Any()).Return(user, nil)
				f.widget.EXPECT().Open(gomock.Any(), storefront.WidgetRequest{
					PublicKey: "pk_test", ClientSecret: "pi_1_secret", Amount: decimal.NewFromInt(420), Currency: "inr",
					Prefill: storefront.Prefill{Name: "Asha Rao", Email: "asha@example.com", Phone: "9876543210"},
				}).Return(confirmation, nil)
				f.api.EXPECT().VerifyPayment(gomock.Any(), storefront.VerifyPaymentRequest{
					PlaceOrderRequest: storefront.PlaceOrderRequest{
						Items: []models.CartItem{line("c1", 1)}, PaymentMethod: models.PaymentOnline, DeliveryInfo: delivery,
					},
					PaymentOrderID: "pi_1", ClientSecret: "pi_1_secret",
				}).Return("o42", nil)
			},
			wantOrder: "o42",
			wantState: storefront.StateCompleted,
			wantCart:  0,
		},
		{
			name: "vérification refusée : panier conservé",
			before: func(f checkoutFixture) {
				f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).Return(paymentOrder(), nil)
				f.api.EXPECT().CurrentUser(gomock.Any()).Return(user, nil)
				f.widget.EXPECT().Open(gomock.Any(), gomock.Any()).Return(confirmation, nil)
				f.api.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
					Return("", &storefront.RemoteError{Status: 402, Message: "Paiement non vérifié"})
			},
			wantState: storefront.StateIdle,
			wantErr: func(t *testing.T, err error) {
				var verr *storefront.PaymentVerificationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "pi_1", verr.PaymentRef)
				assert.Contains(t, err.Error(), "débité")
			},
			wantCart: 1,
		},
		{
			name: "ordre de paiement impossible",
			before: func(f checkoutFixture) {
				f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).
					Return(storefront.PaymentOrder{}, &storefront.RemoteError{Status: 500})
			},
			wantState: storefront.StateIdle,
			wantErr: func(t *testing.T, err error) {
				var ierr *storefront.PaymentInitError
				assert.True(t, errors.As(err, &ierr))
			},
			wantCart: 1,
		},
		{
			name: "widget en échec",
			before: func(f checkoutFixture) {
				f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).Return(paymentOrder(), nil)
				f.api.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, errors.New("hors ligne"))
				f.widget.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, errors.New("script non chargé"))
			},
			wantState: storefront.StateIdle,
			wantErr: func(t *testing.T, err error) {
				var ierr *storefront.PaymentInitError
				assert.True(t, errors.As(err, &ierr))
			},
			wantCart: 1,
		},
		{
			name: "widget fermé",
			before: func(f checkoutFixture) {
				f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).Return(paymentOrder(), nil)
				f.api.EXPECT().CurrentUser(gomock.Any()).Return(user, nil)
				f.widget.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantState: storefront.StateIdle,
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, storefront.ErrPaymentAbandoned)
			},
			wantCart: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckout(t, line("c1", 1))
			tc.before(f)

			orderID, err := f.session.PlaceOrder(context.Background(), models.PaymentOnline, delivery)
			if tc.wantErr != nil {
				tc.wantErr(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantOrder, orderID)
			assert.Equal(t, tc.wantState, f.session.State())
			assert.Len(t, f.cart.Items(), tc.wantCart)
		})
	}
}

func TestCheckout_RejectsReentrantPlaceOrder(t *testing.T) {
	f := newCheckout(t, line("c1", 1))
	started := make(chan struct{})
	release := make(chan struct{})
	f.api.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, storefront.PlaceOrderRequest) (string, error) {
			close(started)
			<-release
			return "o1", nil
		}).Times(1)

	type result struct {
		id  string
		err error
	}
	first := make(chan result, 1)
	go func() {
		id, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
		first <- result{id, err}
	}()
	<-started

	assert.Equal(t, storefront.StatePlacingOrder, f.session.State())
	_, err := f.session.PlaceOrder(context.Background(), models.PaymentCOD, delivery)
	assert.ErrorIs(t, err, storefront.ErrCheckoutInProgress)

	close(release)
	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, "o1", res.id)
	assert.Equal(t, storefront.StateCompleted, f.session.State())
}

func TestCheckout_CartFrozenDuringPayment(t *testing.T) {
	f := newCheckout(t, line("c1", 1))
	confirmation := &storefront.PaymentConfirmation{PaymentOrderID: "pi_1", ClientSecret: "pi_1_secret"}

	f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).Return(paymentOrder(), nil)
	f.api.EXPECT().CurrentUser(gomock.Any()).Return(models.User{Email: "asha@example.com"}, nil)
	f.api.EXPECT().ChangeQuantity(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.api.EXPECT().RemoveCartItem(gomock.Any(), gomock.Any()).Times(0)
	f.api.EXPECT().AddCartItem(gomock.Any(), gomock.Any()).Times(0)
	f.widget.EXPECT().Open(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ storefront.WidgetRequest) (*storefront.PaymentConfirmation, error) {
			// le client clique sur +, - et supprimer pendant qu'il paie
			assert.True(t, f.cart.Frozen())
			assert.ErrorIs(t, f.cart.IncreaseQuantity(ctx, "c1"), storefront.ErrCartFrozen)
			assert.ErrorIs(t, f.cart.DecreaseQuantity(ctx, "c1"), storefront.ErrCartFrozen)
			assert.ErrorIs(t, f.cart.RemoveItem(ctx, "c1"), storefront.ErrCartFrozen)
			_, err := f.cart.AddItem(ctx, storefront.AddItemRequest{ProductID: "p-c2", Quantity: 1})
			assert.ErrorIs(t, err, storefront.ErrCartFrozen)
			assert.Equal(t, []models.CartItem{line("c1", 1)}, f.cart.Items())
			return confirmation, nil
		})
	f.api.EXPECT().VerifyPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req storefront.VerifyPaymentRequest) (string, error) {
			assert.Equal(t, []models.CartItem{line("c1", 1)}, req.Items)
			return "o42", nil
		})

	orderID, err := f.session.PlaceOrder(context.Background(), models.PaymentOnline, delivery)
	require.NoError(t, err)
	assert.Equal(t, "o42", orderID)
	assert.False(t, f.cart.Frozen())
}

func TestCheckout_CartUnfrozenAfterFailure(t *testing.T) {
	f := newCheckout(t, line("c1", 1))
	f.api.EXPECT().CreatePaymentOrder(gomock.Any(), gomock.Any()).Return(paymentOrder(), nil)
	f.api.EXPECT().CurrentUser(gomock.Any()).Return(models.User{}, nil)
	f.widget.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := f.session.PlaceOrder(context.Background(), models.PaymentOnline, delivery)
	assert.ErrorIs(t, err, storefront.ErrPaymentAbandoned)
	assert.False(t, f.cart.Frozen())

	f.api.EXPECT().ChangeQuantity(gomock.Any(), "c1", 1).Return(line("c1", 2), nil)
	require.NoError(t, f.cart.IncreaseQuantity(context.Background(), "c1"))
	flush(t, f.cart)
	assert.Equal(t, 2, f.cart.Items()[0].Quantity)
}
