package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "COD"
	PaymentOnline PaymentMethod = "ONLINE"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusApproved  OrderStatus = "Approved"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
)

type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "Requested"
	ReturnApproved  ReturnStatus = "Return Approved"
	ReturnDenied    ReturnStatus = "Return Denied"
	ReturnCancelled ReturnStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "Paid"
)

// DeliveryInfo : les trois champs sont obligatoires avant tout checkout
type DeliveryInfo struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// MissingFields liste les champs vides (après trim), dans l'ordre du formulaire
func (d DeliveryInfo) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(d.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(d.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Items         []CartItem      `json:"items"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	DeliveryInfo  DeliveryInfo    `json:"deliveryInfo"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus *PaymentStatus  `json:"paymentStatus,omitempty"`
	PaymentRef    string          `json:"paymentRef,omitempty"`
	ReturnStatus  *ReturnStatus   `json:"returnStatus,omitempty"`
	ReturnReason  *string         `json:"returnReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time      `json:"updatedAt,omitempty"`
}

// Clone copie profonde : les pointeurs et la liste d'items ne sont pas partagés
func (o Order) Clone() Order {
	c := o
	c.Items = CloneItems(o.Items)
	if o.PaymentStatus != nil {
		ps := *o.PaymentStatus
		c.PaymentStatus = &ps
	}
	if o.ReturnStatus != nil {
		rs := *o.ReturnStatus
		c.ReturnStatus = &rs
	}
	if o.ReturnReason != nil {
		r := *o.ReturnReason
		c.ReturnReason = &r
	}
	if o.UpdatedAt != nil {
		u := *o.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}
