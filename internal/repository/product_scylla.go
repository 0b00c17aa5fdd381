package repository

import (
	"context"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

type ProductScylla struct {
	session *gocql.Session
}

func NewProductScylla(session *gocql.Session) *ProductScylla {
	return &ProductScylla{session: session}
}

// Get : requête limitée aux champs utiles au panier
func (r *ProductScylla) Get(ctx context.Context, productID string) (models.Product, error) {
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return models.Product{}, ErrNotFound
	}

	var (
		p               models.Product
		price, discount float64
		updatedAt       *time.Time
	)
	err = r.session.Query(`SELECT name, brand, price, discount, stock, sizes, image_urls, updated_at
		FROM products WHERE product_id = ?`, id).WithContext(ctx).
		Scan(&p.Name, &p.Brand, &price, &discount, &p.Stock, &p.Sizes, &p.ImageURLs, &updatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, errors.Wrap(err, "lecture produit")
	}

	p.ID = productID
	p.Price = decimal.NewFromFloat(price)
	p.DiscountPerUnit = decimal.NewFromFloat(discount)
	p.UpdatedAt = updatedAt
	return p, nil
}
