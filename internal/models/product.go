package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product : uniquement les champs lus au moment d'un ajout au panier
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	DiscountPerUnit decimal.Decimal `json:"discountPerUnit"`
	Stock           int             `json:"stock"`
	Sizes           []string        `json:"sizes"`
	ImageURLs       []string        `json:"image_urls"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// FirstImage : première image pour l'aperçu panier
func (p Product) FirstImage() string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}

// HasSize : un produit sans tailles n'accepte que "N/A"
func (p Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return size == SizeNotApplicable
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
