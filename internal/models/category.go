package models

import "time"

type Category struct {
	ID          int64       `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	ImageURL    string      `db:"image_url" json:"image"`
	ProductType ProductType `db:"product_type" json:"productType"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	ImageURL    string `json:"image" validate:"required,url"`
	ProductType string `json:"productType" validate:"required,oneof=CANNABIS HEMP"`
}
