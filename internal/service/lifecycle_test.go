package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"storefront_back_end/internal/cache"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/orderstate"
	"storefront_back_end/internal/repository"
	repomocks "storefront_back_end/internal/repository/mocks"
	svcmocks "storefront_back_end/internal/service/mocks"
)

func returnStatus(s models.ReturnStatus) *models.ReturnStatus {
	return &s
}

func newTestLifecycle(ctrl *gomock.Controller, locker cache.Locker) (*Lifecycle, *repomocks.MockOrderRepository) {
	orders := repomocks.NewMockOrderRepository(ctrl)
	svc := NewLifecycle(Deps{Orders: orders, Locker: locker})
	svc.now = func() time.Time { return fixedNow }
	return svc, orders
}

func TestLifecycle_Advance(t *testing.T) {
	testCases := []struct {
		name       string
		action     orderstate.Action
		before     func(orders *repomocks.MockOrderRepository)
		wantStatus models.OrderStatus
		wantErr    error
	}{
		{
			name:   "approve depuis Pending",
			action: orderstate.ActionApprove,
			before: func(orders *repomocks.MockOrderRepository) {
				orders.EXPECT().Get(gomock.Any(), "o1").Return(models.Order{ID: "o1", Status: models.StatusPending}, nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), "o1", models.StatusPending, models.StatusApproved).Return(nil)
			},
			wantStatus: models.StatusApproved,
		},
		{
			name:   "ship depuis Approved",
			action: orderstate.ActionShip,
			before: func(orders *repomocks.MockOrderRepository) {
				orders.EXPECT().Get(gomock.Any(), "o1").Return(models.Order{ID: "o1", Status: models.StatusApproved}, nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), "o1", models.StatusApproved, models.StatusShipped).Return(nil)
			},
			wantStatus: models.StatusShipped,
		},
		{
			name:   "ship depuis Pending refusé sans écriture",
			action: orderstate.ActionShip,
			before: func(orders *repomocks.MockOrderRepository) {
				orders.EXPECT().Get(gomock.Any(), "o1").Return(models.Order{ID: "o1", Status: models.StatusPending}, nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: orderstate.ErrInvalidTransition,
		},
		{
			name:   "commande modifiée entre lecture et écriture",
			action: orderstate.ActionApprove,
			before: func(orders *repomocks.MockOrderRepository) {
				orders.EXPECT().Get(gomock.Any(), "o1").Return(models.Order{ID: "o1", Status: models.StatusPending}, nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), "o1", models.StatusPending, models.StatusApproved).Return(repository.ErrConflict)
			},
			wantErr: repository.ErrConflict,
		},
		{
			name:   "commande inconnue",
			action: orderstate.ActionApprove,
			before: func(orders *repomocks.MockOrderRepository) {
				orders.EXPECT().Get(gomock.Any(), "o1").Return(models.Order{}, repository.ErrNotFound)
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, orders := newTestLifecycle(ctrl, newMemLocker())
			tc.before(orders)

			order, err := svc.Advance(context.Background(), "o1", tc.action)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, order.Status)
			require.NotNil(t, order.UpdatedAt)
			assert.Equal(t, fixedNow, *order.UpdatedAt)
		})
	}
}

func TestLifecycle_AdvanceInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	locker := newMemLocker()
	svc, _ := newTestLifecycle(ctrl, locker)

	_, err := locker.Lock(context.Background(), cache.LockKey("order", "o1"))
	require.NoError(t, err)

	_, err = svc.Advance(context.Background(), "o1", orderstate.ActionApprove)
	assert.ErrorIs(t, err, cache.ErrLocked)
}

func TestLifecycle_RequestReturn(t *testing.T) {
	testCases := []struct {
		name    string
		order   models.Order
		userID  string
		reason  string
		write   bool
		wantErr error
	}{
		{
			name:   "retour sur commande expédiée",
			order:  models.Order{ID: "o1", UserID: "u1", Status: models.StatusShipped},
			userID: "u1", reason: "  trop petit ", write: true,
		},
		{
			name:   "commande d'un autre client",
			order:  models.Order{ID: "o1", UserID: "u2", Status: models.StatusShipped},
			userID: "u1", reason: "trop petit",
			wantErr: ErrForbidden,
		},
		{
			name:   "commande non livrée",
			order:  models.Order{ID: "o1", UserID: "u1", Status: models.StatusApproved},
			userID: "u1", reason: "trop petit",
			wantErr: orderstate.ErrNotDelivered,
		},
		{
			name:   "motif vide",
			order:  models.Order{ID: "o1", UserID: "u1", Status: models.StatusDelivered},
			userID: "u1", reason: "   ",
			wantErr: orderstate.ErrReasonRequired,
		},
		{
			name: "retour déjà demandé",
			order: models.Order{ID: "o1", UserID: "u1", Status: models.StatusDelivered,
				ReturnStatus: returnStatus(models.ReturnDenied)},
			userID: "u1", reason: "encore",
			wantErr: orderstate.ErrReturnExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, orders := newTestLifecycle(ctrl, newMemLocker())
			orders.EXPECT().Get(gomock.Any(), "o1").Return(tc.order, nil)
			if tc.write {
				orders.EXPECT().RequestReturn(gomock.Any(), "o1", "trop petit").Return(nil)
			}

			order, err := svc.RequestReturn(context.Background(), tc.userID, "o1", tc.reason)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.ReturnRequested, *order.ReturnStatus)
			assert.Equal(t, "trop petit", *order.ReturnReason)
		})
	}
}

func TestLifecycle_CloseReturn(t *testing.T) {
	requested := models.Order{ID: "o1", UserID: "u1", Status: models.StatusDelivered,
		ReturnStatus: returnStatus(models.ReturnRequested)}

	testCases := []struct {
		name    string
		order   models.Order
		userID  string
		admin   bool
		action  orderstate.Action
		want    models.ReturnStatus
		wantErr error
	}{
		{name: "admin accepte", order: requested, userID: "a1", admin: true,
			action: orderstate.ActionApproveReturn, want: models.ReturnApproved},
		{name: "admin refuse", order: requested, userID: "a1", admin: true,
			action: orderstate.ActionDenyReturn, want: models.ReturnDenied},
		{name: "client annule", order: requested, userID: "u1",
			action: orderstate.ActionCancelReturn, want: models.ReturnCancelled},
		{name: "client ne peut pas accepter", order: requested, userID: "u1",
			action: orderstate.ActionApproveReturn, wantErr: ErrForbidden},
		{name: "annulation par un autre client", order: requested, userID: "u2",
			action: orderstate.ActionCancelReturn, wantErr: ErrForbidden},
		{name: "aucun retour", order: models.Order{ID: "o1", UserID: "u1", Status: models.StatusDelivered},
			userID: "a1", admin: true, action: orderstate.ActionApproveReturn, wantErr: orderstate.ErrNoReturn},
		{name: "retour déjà clos", order: models.Order{ID: "o1", UserID: "u1", Status: models.StatusDelivered,
			ReturnStatus: returnStatus(models.ReturnCancelled)},
			userID: "a1", admin: true, action: orderstate.ActionDenyReturn, wantErr: orderstate.ErrInvalidTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, orders := newTestLifecycle(ctrl, newMemLocker())
			orders.EXPECT().Get(gomock.Any(), "o1").Return(tc.order.Clone(), nil)
			if tc.wantErr == nil {
				orders.EXPECT().UpdateReturnStatus(gomock.Any(), "o1", models.ReturnRequested, tc.want).Return(nil)
			}

			order, err := svc.CloseReturn(context.Background(), tc.userID, "o1", tc.action, tc.admin)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *order.ReturnStatus)
		})
	}
}

func TestLifecycle_ListAll(t *testing.T) {
	all := []models.Order{
		{ID: "o1", Status: models.StatusPending},
		{ID: "o2", Status: models.StatusShipped},
		{ID: "o3", Status: models.StatusShipped},
	}

	testCases := []struct {
		name    string
		query   ListQuery
		search  []string
		wantIDs []string
	}{
		{name: "sans filtre", wantIDs: []string{"o1", "o2", "o3"}},
		{name: "par statut", query: ListQuery{Status: models.StatusShipped}, wantIDs: []string{"o2", "o3"}},
		{name: "recherche plein texte", query: ListQuery{Query: "asha"}, search: []string{"o3", "o1"}, wantIDs: []string{"o1", "o3"}},
		{name: "recherche et statut", query: ListQuery{Query: "asha", Status: models.StatusShipped}, search: []string{"o3", "o1"}, wantIDs: []string{"o3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orders := repomocks.NewMockOrderRepository(ctrl)
			index := svcmocks.NewMockOrderIndex(ctrl)
			svc := NewLifecycle(Deps{Orders: orders, Index: index, Locker: newMemLocker()})

			orders.EXPECT().ListAll(gomock.Any()).Return(all, nil)
			orders.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
			if tc.query.Query != "" {
				index.EXPECT().Search(gomock.Any(), tc.query.Query).Return(tc.search, nil)
			}

			list, err := svc.ListAll(context.Background(), tc.query)
			require.NoError(t, err)
			assert.Equal(t, int64(3), list.Total)
			ids := make([]string, 0, len(list.Orders))
			for _, o := range list.Orders {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestLifecycle_DeleteAndReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := repomocks.NewMockOrderRepository(ctrl)
	index := svcmocks.NewMockOrderIndex(ctrl)
	receipts := svcmocks.NewMockReceiptStore(ctrl)
	svc := NewLifecycle(Deps{Orders: orders, Index: index, Receipts: receipts, Locker: newMemLocker()})

	orders.EXPECT().Delete(gomock.Any(), "o1").Return(nil)
	index.EXPECT().Delete(gomock.Any(), "o1").Return(nil)
	receipts.EXPECT().Delete(gomock.Any(), "o1").Return(nil)
	require.NoError(t, svc.Delete(context.Background(), "o1"))

	orders.EXPECT().Get(gomock.Any(), "o2").Return(models.Order{ID: "o2", UserID: "u1"}, nil)
	receipts.EXPECT().URL(gomock.Any(), "o2").Return("http://minio/receipts/o2.html?sig", nil)
	url, html, err := svc.Receipt(context.Background(), "u1", "o2", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio/receipts/o2.html?sig", url)
	assert.Empty(t, html)

	orders.EXPECT().Get(gomock.Any(), "o3").Return(models.Order{ID: "o3", UserID: "u2"}, nil)
	_, _, err = svc.Receipt(context.Background(), "u1", "o3", false)
	assert.ErrorIs(t, err, ErrForbidden)
}
