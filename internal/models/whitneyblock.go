package models

import "time"

// WhitneyBlock is a delivery-address book entry owned by one user.
type WhitneyBlock struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name" json:"lastName"`
	Address   string    `db:"address" json:"address"`
	StrAptBid string    `db:"str_apt_bid" json:"strAptBid"`
	City      string    `db:"city" json:"city"`
	State     string    `db:"state" json:"state"`
	ZipCode   string    `db:"zip_code" json:"zipCode"`
	PhoneNo   string    `db:"phone_no" json:"phoneNo"`
	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type WhitneyBlockRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=50"`
	LastName  string `json:"lastName" validate:"required"`
	Address   string `json:"address" validate:"required"`
	StrAptBid string `json:"strAptBid" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required,zipcode"`
	PhoneNo   string `json:"phoneNo" validate:"required,phone"`
	Note      string `json:"note"`
}
