package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "PENDING"
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)

type Review struct {
	ID        int64        `db:"id" json:"id"`
	ClientID  int64        `db:"client_id" json:"clientId"`
	ProductID int64        `db:"product_id" json:"productId"`
	Status    ReviewStatus `db:"status" json:"reviewStatus"`
	Rating    float64      `db:"rating" json:"rating"`
	Name      string       `db:"name" json:"name"`
	Email     string       `db:"email" json:"email"`
	Review    string       `db:"review" json:"review"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

type SubmitReviewRequest struct {
	ClientID  int64   `json:"clientId" validate:"required,gt=0"`
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Rating    float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Review    string  `json:"review" validate:"required"`
}

type ReviewStatusRequest struct {
	ReviewID int64  `json:"reviewId" validate:"required,gt=0"`
	Status   string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// ReviewClient carries the submitting user's display attributes joined into
// the public aggregate.
type ReviewClient struct {
	FirstName   string      `db:"first_name" json:"firstName"`
	LastName    string      `db:"last_name" json:"lastName"`
	CompanyName string      `db:"company_name" json:"companyName"`
	Email       string      `db:"email" json:"email"`
	ProductType ProductType `db:"product_type" json:"productType"`
}

type ApprovedReview struct {
	ID        int64        `db:"id" json:"id"`
	Rating    float64      `db:"rating" json:"rating"`
	Name      string       `db:"name" json:"name"`
	Email     string       `db:"email" json:"email"`
	Review    string       `db:"review" json:"review"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	Client    ReviewClient `db:"client" json:"client"`
}

// ReviewAggregate is the public per-product rating summary, scoped to
// APPROVED reviews only.
type ReviewAggregate struct {
	ProductID     int64            `json:"productId"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int64            `json:"totalReviews"`
	Reviews       []ApprovedReview `json:"reviews"`
	Product       *Product         `json:"product,omitempty"`
}
