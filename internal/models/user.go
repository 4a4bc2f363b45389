package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"greenmarket/internal/apperr"
)

type AccountType string

const (
	AccountTypeAdmin  AccountType = "ADMIN"
	AccountTypeSeller AccountType = "SELLER"
	AccountTypeBuyer  AccountType = "BUYER"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusApproved AccountStatus = "APPROVED"
	AccountStatusRejected AccountStatus = "REJECTED"
)

type ProductType string

const (
	ProductTypeCannabis ProductType = "CANNABIS"
	ProductTypeHemp     ProductType = "HEMP"
)

type User struct {
	ID              int64         `db:"id" json:"id"`
	DisplayID       string        `db:"display_id" json:"displayId"`
	AccountType     AccountType   `db:"account_type" json:"accountType"`
	AccountStatus   AccountStatus `db:"account_status" json:"accountStatus"`
	FirstName       string        `db:"first_name" json:"firstName"`
	LastName        string        `db:"last_name" json:"lastName"`
	CompanyName     string        `db:"company_name" json:"companyName"`
	Email           string        `db:"email" json:"email"`
	Phone           string        `db:"phone" json:"phone"`
	Address         string        `db:"address" json:"address"`
	ProductType     ProductType   `db:"product_type" json:"productType"`
	OlccNumber      string        `db:"olcc_number" json:"olccNumber"`
	PasswordHash    string        `db:"password_hash" json:"-"`
	IsBlocked       bool          `db:"is_blocked" json:"isBlocked"`
	RejectionReason *string       `db:"rejection_reason" json:"rejectionReason,omitempty"`
	ResetOTPHash    *string       `db:"reset_otp_hash" json:"-"`
	ResetOTPExpires *time.Time    `db:"reset_otp_expires" json:"-"`
	ResetAllowed    bool          `db:"reset_allowed" json:"-"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

type SignupRequest struct {
	AccountType string `json:"accountType" validate:"required,oneof=ADMIN SELLER BUYER"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	ProductType string `json:"productType" validate:"required,oneof=CANNABIS HEMP"`
	OlccNumber  string `json:"olccNumber"`
	Password    string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AccountStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"reasonOfRejection"`
}

// UserDisplayID builds the human-readable identifier assigned at signup:
// upper-cased initials followed by the allocated counter value, e.g. "JD2001".
func UserDisplayID(firstName, lastName string, counter int64) string {
	return fmt.Sprintf("%s%s%d", initial(firstName), initial(lastName), counter)
}

func initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// CanLogin enforces the login gate: only approved, unblocked accounts may
// obtain a session token.
func (u *User) CanLogin() error {
	switch {
	case u.AccountStatus == AccountStatusRejected:
		return apperr.Unauthorized("Your account has been rejected. Please contact support.")
	case u.AccountStatus == AccountStatusPending:
		return apperr.Unauthorized("Your account is in pending state. Please wait for admin approval.")
	case u.IsBlocked:
		return apperr.Unprocessable("Your account is blocked by admin.")
	}
	return nil
}

// ResetOTPRedeemable reports whether a stored reset code can still be
// redeemed at now: a hash and expiry must be present and the expiry not yet
// passed. A true result still requires the submitted code to match the hash.
func (u *User) ResetOTPRedeemable(now time.Time) bool {
	if u.ResetOTPHash == nil || u.ResetOTPExpires == nil {
		return false
	}
	return !u.ResetOTPExpires.Before(now)
}

// CanTransitionTo allows PENDING -> APPROVED|REJECTED and nothing else.
func (u *User) CanTransitionTo(status AccountStatus) error {
	if status != AccountStatusApproved && status != AccountStatusRejected {
		return apperr.BadRequest("Invalid account status.")
	}
	if u.AccountStatus != AccountStatusPending {
		return apperr.Conflict(fmt.Sprintf("Account status is already %s and cannot be changed.", u.AccountStatus))
	}
	return nil
}
