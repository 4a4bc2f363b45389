package models

import (
	"time"

	"github.com/samber/lo"

	"greenmarket/internal/apperr"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
	PaymentMethodCOD  PaymentMethod = "COD"
	PaymentMethodACH  PaymentMethod = "ACH"
)

var PaymentMethods = []PaymentMethod{PaymentMethodCard, PaymentMethodCOD, PaymentMethodACH}

type Order struct {
	ID             int64         `db:"id" json:"id"`
	DisplayID      int64         `db:"display_id" json:"displayId"`
	CustomerID     int64         `db:"customer_id" json:"customerId"`
	WhitneyBlockID int64         `db:"whitney_block_id" json:"whitneyBlockId"`
	PaymentMethod  PaymentMethod `db:"payment_method" json:"paymentMethod"`
	SubOrders      []SubOrder    `db:"-" json:"order"`
	CreatedAt      time.Time     `db:"created_at" json:"createdAt"`
}

// SubOrder is the seller-scoped partition of a multi-seller order.
type SubOrder struct {
	ID           int64       `db:"id" json:"id"`
	OrderID      int64       `db:"order_id" json:"-"`
	SellerID     int64       `db:"seller_id" json:"sellerId"`
	Categories   []string    `db:"-" json:"categories"`
	Items        []OrderItem `db:"-" json:"products"`
	Subtotal     float64     `db:"subtotal" json:"subTotal"`
	ShippingCost float64     `db:"shipping_cost" json:"shippingCost"`
	Total        float64     `db:"total" json:"total"`
}

type OrderItem struct {
	ID           int64   `db:"id" json:"id"`
	SubOrderID   int64   `db:"sub_order_id" json:"-"`
	ProductID    int64   `db:"product_id" json:"productId"`
	Qty          int     `db:"qty" json:"qty"`
	SellerPrice  float64 `db:"seller_price" json:"sellerPrice"`
	ProfitMargin float64 `db:"profit_margin" json:"profitMargin"`
}

type OrderItemRequest struct {
	ProductID    int64   `json:"productId"`
	Qty          int     `json:"qty"`
	SellerPrice  float64 `json:"sellerPrice"`
	ProfitMargin float64 `json:"profitMargin"`
}

type SubOrderRequest struct {
	SellerID     int64              `json:"sellerId"`
	Categories   []string           `json:"categories"`
	Products     []OrderItemRequest `json:"products"`
	Subtotal     float64            `json:"subTotal"`
	ShippingCost float64            `json:"shippingCost"`
	Total        float64            `json:"total"`
}

type CreateOrderRequest struct {
	CustomerID     int64             `json:"customerId"`
	SubOrders      []SubOrderRequest `json:"order"`
	WhitneyBlockID int64             `json:"whitneyBlockId"`
	PaymentMethod  string            `json:"paymentMethod"`
}

type UpdateOrderRequest struct {
	SubOrders     []SubOrderRequest `json:"order"`
	PaymentMethod string            `json:"paymentMethod"`
}

type OrderFilter struct {
	CustomerID    int64
	SellerID      int64
	PaymentMethod string
	StartDate     *time.Time
	EndDate       *time.Time
}

type OrderStatistics struct {
	TotalOrders           int64            `json:"totalOrders"`
	TotalRevenue          float64          `json:"totalRevenue"`
	OrdersByPaymentMethod map[string]int64 `json:"ordersByPaymentMethod"`
}

// Validate applies the full structural contract for order creation. Any
// single violation rejects the whole order; nothing is persisted partially.
func (r *CreateOrderRequest) Validate() error {
	if r.CustomerID == 0 || r.WhitneyBlockID == 0 || r.PaymentMethod == "" || r.SubOrders == nil {
		return apperr.BadRequest("Customer ID, order details, Whitney block ID, and payment method are required.")
	}
	if r.CustomerID < 0 {
		return apperr.BadRequest("Customer ID is not a valid ID.")
	}
	if r.WhitneyBlockID < 0 {
		return apperr.BadRequest("Whitney block ID is not a valid ID.")
	}
	if !IsValidPaymentMethod(r.PaymentMethod) {
		return apperr.BadRequest("Invalid payment method.")
	}
	return validateSubOrders(r.SubOrders)
}

// Validate checks the replacement fields of an order update; absent fields
// keep their stored values.
func (r *UpdateOrderRequest) Validate() error {
	if r.PaymentMethod != "" && !IsValidPaymentMethod(r.PaymentMethod) {
		return apperr.BadRequest("Invalid payment method.")
	}
	if r.SubOrders != nil {
		return validateSubOrders(r.SubOrders)
	}
	return nil
}

func validateSubOrders(subOrders []SubOrderRequest) error {
	if len(subOrders) == 0 {
		return apperr.BadRequest("Order must be a non-empty array.")
	}
	for _, sub := range subOrders {
		if sub.SellerID <= 0 {
			return apperr.BadRequest("Invalid seller ID in order.")
		}
		if len(sub.Categories) == 0 {
			return apperr.BadRequest("Categories are required for each sub-order.")
		}
		if len(sub.Products) == 0 {
			return apperr.BadRequest("Products are required for each sub-order.")
		}
		for _, item := range sub.Products {
			if item.ProductID <= 0 {
				return apperr.BadRequest("Invalid product ID in order.")
			}
			if item.Qty < 1 {
				return apperr.BadRequest("Product quantity must be at least 1.")
			}
			if item.SellerPrice < 0 {
				return apperr.BadRequest("Seller price must be a positive number.")
			}
			if item.ProfitMargin < 0 {
				return apperr.BadRequest("Profit margin cannot be negative.")
			}
		}
		if sub.Subtotal < 0 {
			return apperr.BadRequest("Subtotal must be a positive number.")
		}
		if sub.ShippingCost < 0 {
			return apperr.BadRequest("Shipping cost must be a positive number.")
		}
		if sub.Total < 0 {
			return apperr.BadRequest("Total must be a positive number.")
		}
	}
	return nil
}

func IsValidPaymentMethod(method string) bool {
	return lo.Contains(PaymentMethods, PaymentMethod(method))
}
