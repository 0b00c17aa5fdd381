// Package orderstate porte les règles de transition d'une commande.
// Le serveur les applique avant d'écrire ; le client ne fait que refléter le résultat.
package orderstate

import (
	"errors"
	"fmt"
	"strings"

	"storefront_back_end/internal/models"
)

var (
	ErrInvalidTransition = errors.New("transition de statut invalide")
	ErrReasonRequired    = errors.New("motif de retour requis")
	ErrNotDelivered      = errors.New("commande non livrée")
	ErrReturnExists      = errors.New("une demande de retour existe déjà")
	ErrNoReturn          = errors.New("aucune demande de retour en cours")
)

type TransitionError struct {
	Action string
	From   string
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s depuis %q: %v", e.Action, e.From, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

type Action string

const (
	ActionApprove       Action = "approve"
	ActionShip          Action = "ship"
	ActionDeliver       Action = "deliver"
	ActionRequestReturn Action = "request_return"
	ActionApproveReturn Action = "approve_return"
	ActionDenyReturn    Action = "deny_return"
	ActionCancelReturn  Action = "cancel_return"
)

// forward : Pending -> Approved -> Shipped -> Delivered, jamais en arrière
var forward = map[Action]struct{ from, to models.OrderStatus }{
	ActionApprove: {models.StatusPending, models.StatusApproved},
	ActionShip:    {models.StatusApproved, models.StatusShipped},
	ActionDeliver: {models.StatusShipped, models.StatusDelivered},
}

// returnFlow : seules les demandes "Requested" peuvent être clôturées
var returnFlow = map[Action]models.ReturnStatus{
	ActionApproveReturn: models.ReturnApproved,
	ActionDenyReturn:    models.ReturnDenied,
	ActionCancelReturn:  models.ReturnCancelled,
}

// IsDelivered : le retour n'est ouvert qu'une fois la commande expédiée/livrée
func IsDelivered(status models.OrderStatus) bool {
	return status == models.StatusShipped || status == models.StatusDelivered
}

// NextStatus valide une transition admin du statut principal
func NextStatus(action Action, current models.OrderStatus) (models.OrderStatus, error) {
	rule, ok := forward[action]
	if !ok {
		return current, &TransitionError{Action: string(action), From: string(current), Err: ErrInvalidTransition}
	}
	if current != rule.from {
		return current, &TransitionError{Action: string(action), From: string(current), Err: ErrInvalidTransition}
	}
	return rule.to, nil
}

// RequestReturn valide une demande de retour client et retourne le motif nettoyé
func RequestReturn(order models.Order, reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", &TransitionError{Action: string(ActionRequestReturn), From: string(order.Status), Err: ErrReasonRequired}
	}
	if !IsDelivered(order.Status) {
		return "", &TransitionError{Action: string(ActionRequestReturn), From: string(order.Status), Err: ErrNotDelivered}
	}
	if order.ReturnStatus != nil {
		return "", &TransitionError{Action: string(ActionRequestReturn), From: string(*order.ReturnStatus), Err: ErrReturnExists}
	}
	return reason, nil
}

// NextReturnStatus valide la clôture d'une demande de retour (admin ou client)
func NextReturnStatus(action Action, current *models.ReturnStatus) (models.ReturnStatus, error) {
	to, ok := returnFlow[action]
	if !ok {
		return "", &TransitionError{Action: string(action), From: returnLabel(current), Err: ErrInvalidTransition}
	}
	if current == nil {
		return "", &TransitionError{Action: string(action), From: returnLabel(current), Err: ErrNoReturn}
	}
	if *current != models.ReturnRequested {
		return "", &TransitionError{Action: string(action), From: returnLabel(current), Err: ErrInvalidTransition}
	}
	return to, nil
}

func returnLabel(s *models.ReturnStatus) string {
	if s == nil {
		return "none"
	}
	return string(*s)
}
