package services

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
	"greenmarket/internal/policy"
)

type ProductService struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewProductService(db *sqlx.DB, logger zerolog.Logger) *ProductService {
	return &ProductService{db: db, logger: logger}
}

// Create inserts a pending listing owned by the seller, allocating the next
// numeric display ID and tagging it NEW.
func (s *ProductService) Create(sellerID int64, productType models.ProductType, req *models.ProductRequest) (*models.Product, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	displayID, err := nextCounterValue(tx, CounterProductID, SeedProductID)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`INSERT INTO products (display_id, status, product_name, description, product_category,
			product_type, cannabinoid_type, strain_type, grow_type, seller_id, seller_price,
			profit_margin, image_url, lab_report_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		displayID, models.ProductStatusPending, req.Name, req.Description, req.Category,
		productType, req.CannabinoidType, req.StrainType, req.GrowType, sellerID, req.SellerPrice,
		req.ImageURL, req.LabReportURL,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("seller_id", sellerID).Msg("Error creating product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	productID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product ID: %w", err)
	}

	if _, err = tx.Exec(
		`INSERT INTO product_tags (product_id, tag) VALUES (?, ?)`,
		productID, models.ProductTagNew,
	); err != nil {
		return nil, fmt.Errorf("failed to tag product: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int64("product_id", productID).
		Int64("display_id", displayID).
		Int64("seller_id", sellerID).
		Msg("Product created, pending margin approval")
	return s.GetByID(productID)
}

func (s *ProductService) GetByID(productID int64) (*models.Product, error) {
	var product models.Product
	err := s.db.Get(&product, `SELECT * FROM products WHERE id = ?`, productID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Product not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := s.loadTags([]*models.Product{&product}); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListPublic returns approved listings, newest first.
func (s *ProductService) ListPublic() ([]models.Product, error) {
	return s.list(`SELECT * FROM products WHERE status = ? ORDER BY created_at DESC`,
		models.ProductStatusApproved)
}

// ListForBuyer narrows the approved catalog to the buyer's product type.
func (s *ProductService) ListForBuyer(productType models.ProductType) ([]models.Product, error) {
	return s.list(`SELECT * FROM products WHERE status = ? AND product_type = ? ORDER BY created_at DESC`,
		models.ProductStatusApproved, productType)
}

// ListForSeller returns the seller's own listings in every status.
func (s *ProductService) ListForSeller(sellerID int64) ([]models.Product, error) {
	return s.list(`SELECT * FROM products WHERE seller_id = ? ORDER BY created_at DESC`, sellerID)
}

// ListPending returns listings still awaiting a profit margin.
func (s *ProductService) ListPending() ([]models.Product, error) {
	return s.list(`SELECT * FROM products WHERE status = ? ORDER BY created_at DESC`,
		models.ProductStatusPending)
}

// Update replaces the seller-editable fields. A price change sends the
// listing back through margin approval.
func (s *ProductService) Update(callerID int64, callerRole models.AccountType, productID int64, req *models.ProductRequest) (*models.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if !policy.Allow(callerRole, callerID, product.SellerID, policy.ActionUpdateProduct) {
		return nil, apperr.Unauthorized("You are not allowed to update this product.")
	}

	status, margin := product.ApplyPriceChange(req.SellerPrice)

	_, err = s.db.Exec(
		`UPDATE products SET product_name = ?, description = ?, product_category = ?,
			cannabinoid_type = ?, strain_type = ?, grow_type = ?, seller_price = ?,
			image_url = ?, lab_report_url = ?, status = ?, profit_margin = ?
		 WHERE id = ?`,
		req.Name, req.Description, req.Category,
		req.CannabinoidType, req.StrainType, req.GrowType, req.SellerPrice,
		req.ImageURL, req.LabReportURL, status, margin,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if status != product.Status {
		s.logger.Info().Int64("product_id", productID).Msg("Price changed, product reset to pending")
	}
	return s.GetByID(productID)
}

func (s *ProductService) Delete(callerID int64, callerRole models.AccountType, productID int64) error {
	product, err := s.GetByID(productID)
	if err != nil {
		return err
	}

	if !policy.Allow(callerRole, callerID, product.SellerID, policy.ActionDeleteProduct) {
		return apperr.Unauthorized("You are not allowed to delete this product.")
	}

	if _, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", productID).Msg("Product deleted")
	return nil
}

// AddProfitMargin is the approval step: assigning a margin moves a pending
// listing to APPROVED.
func (s *ProductService) AddProfitMargin(productID int64, margin float64) (*models.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if err := product.CanAddMargin(); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		`UPDATE products SET profit_margin = ?, status = ? WHERE id = ?`,
		margin, models.ProductStatusApproved, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set profit margin: %w", err)
	}

	s.logger.Info().
		Int64("product_id", productID).
		Float64("profit_margin", margin).
		Msg("Profit margin assigned, product approved")
	return s.GetByID(productID)
}

// UpdateProfitMargin adjusts the margin of an already-approved listing.
func (s *ProductService) UpdateProfitMargin(productID int64, margin float64) (*models.Product, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if err := product.CanUpdateMargin(); err != nil {
		return nil, err
	}

	_, err = s.db.Exec(`UPDATE products SET profit_margin = ? WHERE id = ?`, margin, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to update profit margin: %w", err)
	}
	return s.GetByID(productID)
}

func (s *ProductService) AddTag(productID int64, tag string) (*models.Product, error) {
	if !lo.Contains(models.AssignableProductTags, models.ProductTag(tag)) {
		return nil, apperr.BadRequest("Invalid product tag.")
	}

	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if lo.Contains(product.Tags, tag) {
		return nil, apperr.Conflict("Product already has this tag.")
	}

	if _, err := s.db.Exec(
		`INSERT INTO product_tags (product_id, tag) VALUES (?, ?)`, productID, tag,
	); err != nil {
		return nil, fmt.Errorf("failed to add product tag: %w", err)
	}

	s.logger.Info().Int64("product_id", productID).Str("tag", tag).Msg("Product tag added")
	return s.GetByID(productID)
}

func (s *ProductService) list(query string, args ...any) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := s.db.Select(&products, query, args...); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	refs := lo.Map(products, func(_ models.Product, i int) *models.Product { return &products[i] })
	if err := s.loadTags(refs); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) loadTags(products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := lo.Map(products, func(p *models.Product, _ int) int64 { return p.ID })
	query, args, err := sqlx.In(`SELECT product_id, tag FROM product_tags WHERE product_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build tag query: %w", err)
	}

	var rows []struct {
		ProductID int64  `db:"product_id"`
		Tag       string `db:"tag"`
	}
	if err := s.db.Select(&rows, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	byProduct := make(map[int64][]string, len(products))
	for _, row := range rows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], row.Tag)
	}
	for _, p := range products {
		p.Tags = byProduct[p.ID]
		if p.Tags == nil {
			p.Tags = make([]string, 0)
		}
	}
	return nil
}
