package orderstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/models"
)

func returnStatus(s models.ReturnStatus) *models.ReturnStatus {
	return &s
}

func TestNextStatus(t *testing.T) {
	testCases := []struct {
		name    string
		action  Action
		current models.OrderStatus
		want    models.OrderStatus
		wantErr error
	}{
		{name: "approve depuis Pending", action: ActionApprove, current: models.StatusPending, want: models.StatusApproved},
		{name: "ship depuis Approved", action: ActionShip, current: models.StatusApproved, want: models.StatusShipped},
		{name: "deliver depuis Shipped", action: ActionDeliver, current: models.StatusShipped, want: models.StatusDelivered},
		{name: "approve deux fois", action: ActionApprove, current: models.StatusApproved, want: models.StatusApproved, wantErr: ErrInvalidTransition},
		{name: "ship depuis Pending", action: ActionShip, current: models.StatusPending, want: models.StatusPending, wantErr: ErrInvalidTransition},
		{name: "pas de retour arrière", action: ActionApprove, current: models.StatusShipped, want: models.StatusShipped, wantErr: ErrInvalidTransition},
		{name: "action inconnue", action: ActionDenyReturn, current: models.StatusPending, want: models.StatusPending, wantErr: ErrInvalidTransition},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.action, tc.current)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRequestReturn(t *testing.T) {
	testCases := []struct {
		name       string
		order      models.Order
		reason     string
		wantReason string
		wantErr    error
	}{
		{
			name:       "commande expédiée",
			order:      models.Order{Status: models.StatusShipped},
			reason:     "  taille trop petite ",
			wantReason: "taille trop petite",
		},
		{
			name:       "commande livrée",
			order:      models.Order{Status: models.StatusDelivered},
			reason:     "défaut",
			wantReason: "défaut",
		},
		{
			name:    "motif vide",
			order:   models.Order{Status: models.StatusDelivered},
			reason:  "   ",
			wantErr: ErrReasonRequired,
		},
		{
			name:    "pas encore livrée",
			order:   models.Order{Status: models.StatusApproved},
			reason:  "trop long",
			wantErr: ErrNotDelivered,
		},
		{
			name:    "retour déjà demandé",
			order:   models.Order{Status: models.StatusDelivered, ReturnStatus: returnStatus(models.ReturnRequested)},
			reason:  "encore",
			wantErr: ErrReturnExists,
		},
		{
			name:    "retour terminé, pas de réouverture",
			order:   models.Order{Status: models.StatusDelivered, ReturnStatus: returnStatus(models.ReturnCancelled)},
			reason:  "encore",
			wantErr: ErrReturnExists,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RequestReturn(tc.order, tc.reason)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantReason, got)
		})
	}
}

func TestNextReturnStatus(t *testing.T) {
	got, err := NextReturnStatus(ActionApproveReturn, returnStatus(models.ReturnRequested))
	require.NoError(t, err)
	assert.Equal(t, models.ReturnApproved, got)

	got, err = NextReturnStatus(ActionDenyReturn, returnStatus(models.ReturnRequested))
	require.NoError(t, err)
	assert.Equal(t, models.ReturnDenied, got)

	got, err = NextReturnStatus(ActionCancelReturn, returnStatus(models.ReturnRequested))
	require.NoError(t, err)
	assert.Equal(t, models.ReturnCancelled, got)

	_, err = NextReturnStatus(ActionApproveReturn, nil)
	assert.ErrorIs(t, err, ErrNoReturn)

	_, err = NextReturnStatus(ActionCancelReturn, returnStatus(models.ReturnDenied))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var terr *TransitionError
	_, err = NextReturnStatus(ActionShip, returnStatus(models.ReturnRequested))
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "ship", terr.Action)
}
