package services

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

type ReviewService struct {
	db       *sqlx.DB
	products *ProductService
	logger   zerolog.Logger
}

func NewReviewService(db *sqlx.DB, products *ProductService, logger zerolog.Logger) *ReviewService {
	return &ReviewService{db: db, products: products, logger: logger}
}

// Submit stores a review in PENDING; it stays invisible until moderated.
func (s *ReviewService) Submit(req *models.SubmitReviewRequest) (*models.Review, error) {
	var exists bool
	if err := s.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, req.ClientID); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Client not found.")
	}
	if _, err := s.products.GetByID(req.ProductID); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO reviews (client_id, product_id, status, rating, name, email, review)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ClientID, req.ProductID, models.ReviewStatusPending,
		req.Rating, req.Name, req.Email, req.Review,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("Error submitting review")
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	reviewID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get review ID: %w", err)
	}

	s.logger.Info().
		Int64("review_id", reviewID).
		Int64("product_id", req.ProductID).
		Msg("Review submitted, pending moderation")
	return s.getByID(reviewID)
}

// AggregateForProduct computes the public rating summary over APPROVED
// reviews. A product with none yields averageRating 0 and an empty list.
func (s *ReviewService) AggregateForProduct(productID int64) (*models.ReviewAggregate, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}

	aggregate := models.ReviewAggregate{
		ProductID: productID,
		Reviews:   make([]models.ApprovedReview, 0),
		Product:   product,
	}

	var summary struct {
		AverageRating float64 `db:"average_rating"`
		TotalReviews  int64   `db:"total_reviews"`
	}
	err = s.db.Get(&summary,
		`SELECT COALESCE(ROUND(AVG(rating), 1), 0) AS average_rating,
			COUNT(*) AS total_reviews
		 FROM reviews WHERE product_id = ? AND status = ?`,
		productID, models.ReviewStatusApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	aggregate.AverageRating = summary.AverageRating
	aggregate.TotalReviews = summary.TotalReviews

	err = s.db.Select(&aggregate.Reviews,
		`SELECT r.id, r.rating, r.name, r.email, r.review, r.created_at,
			u.first_name AS "client.first_name",
			u.last_name AS "client.last_name",
			u.company_name AS "client.company_name",
			u.email AS "client.email",
			u.product_type AS "client.product_type"
		 FROM reviews r
		 JOIN users u ON u.id = r.client_id
		 WHERE r.product_id = ? AND r.status = ?
		 ORDER BY r.created_at DESC`,
		productID, models.ReviewStatusApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &aggregate, nil
}

// ListPending returns the moderation queue, oldest first.
func (s *ReviewService) ListPending() ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	err := s.db.Select(&reviews,
		`SELECT * FROM reviews WHERE status = ? ORDER BY created_at ASC`,
		models.ReviewStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return reviews, nil
}

// UpdateStatus moderates a pending review; moderated reviews are final.
func (s *ReviewService) UpdateStatus(req *models.ReviewStatusRequest) (*models.Review, error) {
	review, err := s.getByID(req.ReviewID)
	if err != nil {
		return nil, err
	}

	if review.Status != models.ReviewStatusPending {
		return nil, apperr.Conflict(
			fmt.Sprintf("Review is already %s and cannot be changed.", review.Status))
	}

	_, err = s.db.Exec(`UPDATE reviews SET status = ? WHERE id = ?`, req.Status, req.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	s.logger.Info().
		Int64("review_id", req.ReviewID).
		Str("status", req.Status).
		Msg("Review moderated")
	return s.getByID(req.ReviewID)
}

func (s *ReviewService) getByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	err := s.db.Get(&review, `SELECT * FROM reviews WHERE id = ?`, reviewID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Review not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}
