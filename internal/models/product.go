package models

import (
	"time"

	"greenmarket/internal/apperr"
)

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusApproved ProductStatus = "APPROVED"
)

type ProductTag string

const (
	ProductTagNew         ProductTag = "NEW"
	ProductTagRecommended ProductTag = "RECOMMENDED"
	ProductTagFeatured    ProductTag = "FEATURED"
)

// AssignableProductTags are the tags an admin may add after creation;
// NEW is only ever set by default.
var AssignableProductTags = []ProductTag{ProductTagRecommended, ProductTagFeatured}

type Product struct {
	ID              int64         `db:"id" json:"id"`
	DisplayID       int64         `db:"display_id" json:"displayId"`
	Status          ProductStatus `db:"status" json:"productStatus"`
	Name            string        `db:"product_name" json:"productName"`
	Description     string        `db:"description" json:"description"`
	Category        string        `db:"product_category" json:"productCategory"`
	ProductType     ProductType   `db:"product_type" json:"productType"`
	CannabinoidType string        `db:"cannabinoid_type" json:"cannabinoidType"`
	StrainType      string        `db:"strain_type" json:"strainType"`
	GrowType        string        `db:"grow_type" json:"growType"`
	SellerID        int64         `db:"seller_id" json:"sellerId"`
	SellerPrice     float64       `db:"seller_price" json:"sellerPrice"`
	ProfitMargin    float64       `db:"profit_margin" json:"profitMargin"`
	ImageURL        string        `db:"image_url" json:"productImage"`
	LabReportURL    string        `db:"lab_report_url" json:"labReport"`
	Tags            []string      `db:"-" json:"productTags"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

// CanAddMargin gates the initial margin assignment: it doubles as the
// approval step, so it only applies to listings still pending.
func (p *Product) CanAddMargin() error {
	if p.Status == ProductStatusApproved {
		return apperr.Conflict("Profit margin already assigned. Use the update operation instead.")
	}
	return nil
}

// CanUpdateMargin: the margin is only mutable while the listing is approved.
func (p *Product) CanUpdateMargin() error {
	if p.Status != ProductStatusApproved {
		return apperr.Conflict("Profit margin can only be updated for approved products.")
	}
	return nil
}

// ApplyPriceChange returns the status and margin the listing must carry
// after the seller sets newPrice. Any price change forces re-approval:
// status drops to PENDING and the margin resets, regardless of prior state.
func (p *Product) ApplyPriceChange(newPrice float64) (ProductStatus, float64) {
	if newPrice != p.SellerPrice {
		return ProductStatusPending, 0
	}
	return p.Status, p.ProfitMargin
}

type ProductRequest struct {
	Name            string  `json:"productName" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	SellerPrice     float64 `json:"sellerPrice" validate:"required,gt=0"`
	Category        string  `json:"productCategory" validate:"required"`
	CannabinoidType string  `json:"cannabinoidType" validate:"required"`
	StrainType      string  `json:"strainType" validate:"required"`
	GrowType        string  `json:"growType" validate:"required"`
	ImageURL        string  `json:"productImage" validate:"required,url"`
	LabReportURL    string  `json:"labReport" validate:"required,url"`
}

type ProfitMarginRequest struct {
	ProfitMargin float64 `json:"profitMargin" validate:"required,gte=0"`
}

type ProductTagRequest struct {
	ProductTag string `json:"productTag" validate:"required"`
}
