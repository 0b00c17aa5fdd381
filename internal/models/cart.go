package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	SizeNotApplicable = "N/A"
)

// Sizes acceptées pour une ligne de panier (en plus de "N/A")
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// CartItem est une ligne de panier. L'ID est attribué par le serveur à l'ajout.
type CartItem struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPerUnit decimal.Decimal `json:"discountPerUnit"`
	Quantity        int             `json:"quantity"`
	Size            string          `json:"size"`
	ImageRef        string          `json:"imageRef"`
}

// ClampQuantity ramène q dans [MinQuantity, MaxQuantity]
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// NormalizeSize retourne la taille canonique, ou "" si elle est inconnue
func NormalizeSize(size string) string {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" || s == SizeNotApplicable {
		return SizeNotApplicable
	}
	for _, known := range Sizes {
		if s == known {
			return s
		}
	}
	return ""
}

// CloneItems copie la liste : une commande garde un instantané, jamais le panier vivant.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
