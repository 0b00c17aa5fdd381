// Package pricing calcule les totaux d'un panier. Aucune dépendance réseau, aucun état.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

// PlatformFee est facturé une seule fois par commande, et seulement si le panier n'est pas vide.
var PlatformFee = decimal.NewFromInt(20)

type CartTotals struct {
	TotalQuantity int             `json:"totalQuantity"`
	TotalMRP      decimal.Decimal `json:"totalMRP"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	PlatformFee   decimal.Decimal `json:"platformFee"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
}

// Calculate recalcule tout depuis les lignes. Les sommes ne sont jamais arrondies ici,
// l'arrondi se fait à l'affichage via Rounded.
func Calculate(items []models.CartItem) CartTotals {
	totals := CartTotals{
		TotalMRP:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		PlatformFee:   decimal.Zero,
		FinalAmount:   decimal.Zero,
	}
	if len(items) == 0 {
		return totals
	}

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.TotalQuantity += item.Quantity
		totals.TotalMRP = totals.TotalMRP.Add(item.UnitPrice.Mul(qty))
		totals.TotalDiscount = totals.TotalDiscount.Add(item.DiscountPerUnit.Mul(qty))
	}

	totals.PlatformFee = PlatformFee
	totals.FinalAmount = totals.TotalMRP.Sub(totals.TotalDiscount).Add(totals.PlatformFee)
	return totals
}

// Rounded retourne une copie arrondie à 2 décimales pour l'affichage
func (t CartTotals) Rounded() CartTotals {
	return CartTotals{
		TotalQuantity: t.TotalQuantity,
		TotalMRP:      t.TotalMRP.Round(2),
		TotalDiscount: t.TotalDiscount.Round(2),
		PlatformFee:   t.PlatformFee.Round(2),
		FinalAmount:   t.FinalAmount.Round(2),
	}
}

// IsEmpty : aucun article
func (t CartTotals) IsEmpty() bool {
	return t.TotalQuantity == 0
}

// MinorUnits convertit un montant en centimes pour la passerelle de paiement
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
