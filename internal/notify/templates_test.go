package notify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/models"
)

func testOrder() models.Order {
	return models.Order{
		ID:     "o1",
		UserID: "u1",
		Items: []models.CartItem{{
			ID: "c1", Name: "T-shirt <b>", Brand: "Acme",
			UnitPrice: decimal.NewFromInt(500), DiscountPerUnit: decimal.NewFromInt(50),
			Quantity: 2, Size: "M",
		}},
		TotalAmount:   decimal.NewFromInt(920),
		PaymentMethod: models.PaymentCOD,
		DeliveryInfo:  models.DeliveryInfo{FullName: "Asha", Address: "1 rue", Phone: "999"},
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRenderConfirmation(t *testing.T) {
	html, err := RenderConfirmation(testOrder(), true)
	require.NoError(t, err)
	assert.Contains(t, html, "#o1")
	assert.Contains(t, html, "1000.00")
	assert.Contains(t, html, "920.00")
	assert.Contains(t, html, "cid:commande.png")
	assert.Contains(t, html, "T-shirt &lt;b&gt;")
}

func TestRenderStatusUpdate(t *testing.T) {
	order := testOrder()
	order.Status = models.StatusShipped
	html, err := RenderStatusUpdate(order)
	require.NoError(t, err)
	assert.Contains(t, html, "expédiée")

	rs := models.ReturnDenied
	order.ReturnStatus = &rs
	html, err = RenderStatusUpdate(order)
	require.NoError(t, err)
	assert.Contains(t, html, "Retour refusé")
	assert.Contains(t, html, "Return Denied")
}

func TestRenderReceipt(t *testing.T) {
	html, err := RenderReceipt(testOrder())
	require.NoError(t, err)
	assert.Contains(t, html, "01/05/2024 10:00")
	assert.Contains(t, html, "Asha")
}

func TestOrderQR(t *testing.T) {
	png, err := OrderQR("http://localhost:8080", "o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
