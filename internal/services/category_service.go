package services

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

type CategoryService struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewCategoryService(db *sqlx.DB, logger zerolog.Logger) *CategoryService {
	return &CategoryService{db: db, logger: logger}
}

func (s *CategoryService) Create(req *models.CategoryRequest) (*models.Category, error) {
	var exists bool
	err := s.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER(?))`, req.Name)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if exists {
		return nil, apperr.BadRequest("Category with this name already exists.")
	}

	result, err := s.db.Exec(
		`INSERT INTO categories (name, image_url, product_type) VALUES (?, ?, ?)`,
		req.Name, req.ImageURL, req.ProductType,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("Error creating category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	categoryID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	s.logger.Info().Int64("category_id", categoryID).Str("name", req.Name).Msg("Category created")
	return s.GetByID(categoryID)
}

func (s *CategoryService) GetByID(categoryID int64) (*models.Category, error) {
	var category models.Category
	err := s.db.Get(&category, `SELECT * FROM categories WHERE id = ?`, categoryID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Category not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := s.db.Select(&categories, `SELECT * FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(categoryID int64, req *models.CategoryRequest) (*models.Category, error) {
	if _, err := s.GetByID(categoryID); err != nil {
		return nil, err
	}

	var exists bool
	err := s.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE LOWER(name) = LOWER(?) AND id != ?)`,
		req.Name, categoryID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if exists {
		return nil, apperr.BadRequest("Category with this name already exists.")
	}

	_, err = s.db.Exec(
		`UPDATE categories SET name = ?, image_url = ?, product_type = ? WHERE id = ?`,
		req.Name, req.ImageURL, req.ProductType, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return s.GetByID(categoryID)
}

func (s *CategoryService) Delete(categoryID int64) error {
	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound("Category not found.")
	}

	s.logger.Info().Int64("category_id", categoryID).Msg("Category deleted")
	return nil
}
