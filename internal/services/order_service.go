package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

type OrderService struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewOrderService(db *sqlx.DB, logger zerolog.Logger) *OrderService {
	return &OrderService{db: db, logger: logger}
}

// Create validates the full order structure, checks every referenced
// entity, and persists the order, its sub-orders, categories, and line
// items in one transaction together with the display-ID allocation.
func (s *OrderService) Create(req *models.CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(req); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	displayID, err := nextCounterValue(tx, CounterOrderID, SeedOrderID)
	if err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`INSERT INTO orders (display_id, customer_id, whitney_block_id, payment_method)
		 VALUES (?, ?, ?, ?)`,
		displayID, req.CustomerID, req.WhitneyBlockID, req.PaymentMethod,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", req.CustomerID).Msg("Error creating order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get order ID: %w", err)
	}

	if err := s.insertSubOrders(tx, orderID, req.SubOrders); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Int64("display_id", displayID).
		Int64("customer_id", req.CustomerID).
		Msg("Order created")
	return s.GetByID(orderID)
}

func (s *OrderService) GetByID(orderID int64) (*models.Order, error) {
	var order models.Order
	err := s.db.Get(&order, `SELECT * FROM orders WHERE id = ?`, orderID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Order not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := s.loadSubOrders([]*models.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetByDisplayID(displayID int64) (*models.Order, error) {
	var order models.Order
	err := s.db.Get(&order, `SELECT * FROM orders WHERE display_id = ?`, displayID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Order not found with provided custom ID.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if err := s.loadSubOrders([]*models.Order{&order}); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filter, newest first, with offset/limit
// pagination.
func (s *OrderService) List(filter models.OrderFilter, page, limit int) (*models.PagedOrders, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	where, args := buildOrderFilter(filter)

	var total int64
	countQuery := `SELECT COUNT(DISTINCT o.id) FROM orders o
		LEFT JOIN sub_orders so ON so.order_id = o.id` + where
	if err := s.db.Get(&total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	query := `SELECT DISTINCT o.* FROM orders o
		LEFT JOIN sub_orders so ON so.order_id = o.id` + where +
		` ORDER BY o.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	orders := make([]models.Order, 0)
	if err := s.db.Select(&orders, query, args...); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	refs := lo.Map(orders, func(_ models.Order, i int) *models.Order { return &orders[i] })
	if err := s.loadSubOrders(refs); err != nil {
		return nil, err
	}

	return &models.PagedOrders{
		Orders:     orders,
		Pagination: models.NewPagination(page, limit, total, len(orders)),
	}, nil
}

func (s *OrderService) ListByCustomer(customerID int64, page, limit int) (*models.PagedOrders, error) {
	return s.List(models.OrderFilter{CustomerID: customerID}, page, limit)
}

// ListBySeller matches the seller across sub-orders.
func (s *OrderService) ListBySeller(sellerID int64, page, limit int) (*models.PagedOrders, error) {
	return s.List(models.OrderFilter{SellerID: sellerID}, page, limit)
}

// Update replaces the payment method and/or the whole sub-order structure.
// Replacement sub-orders go through the same validation as creation.
func (s *OrderService) Update(orderID int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.SubOrders != nil {
		if err := s.checkSubOrderReferences(req.SubOrders); err != nil {
			return nil, err
		}
	}

	if _, err := s.GetByID(orderID); err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if req.PaymentMethod != "" {
		if _, err := tx.Exec(
			`UPDATE orders SET payment_method = ? WHERE id = ?`, req.PaymentMethod, orderID,
		); err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
	}

	if req.SubOrders != nil {
		// Cascades to sub_order_categories and order_items.
		if _, err := tx.Exec(`DELETE FROM sub_orders WHERE order_id = ?`, orderID); err != nil {
			return nil, fmt.Errorf("failed to replace sub-orders: %w", err)
		}
		if err := s.insertSubOrders(tx, orderID, req.SubOrders); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().Int64("order_id", orderID).Msg("Order updated")
	return s.GetByID(orderID)
}

func (s *OrderService) Delete(orderID int64) error {
	result, err := s.db.Exec(`DELETE FROM orders WHERE id = ?`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound("Order not found.")
	}

	s.logger.Info().Int64("order_id", orderID).Msg("Order deleted")
	return nil
}

// Statistics aggregates order count, summed sub-order totals, and counts per
// payment method, scoped by the filter's date range/customer/seller.
func (s *OrderService) Statistics(filter models.OrderFilter) (*models.OrderStatistics, error) {
	where, args := buildOrderFilter(filter)

	stats := models.OrderStatistics{
		OrdersByPaymentMethod: make(map[string]int64),
	}

	var summary struct {
		TotalOrders  int64   `db:"total_orders"`
		TotalRevenue float64 `db:"total_revenue"`
	}
	err := s.db.Get(&summary,
		`SELECT COUNT(DISTINCT o.id) AS total_orders,
			COALESCE(SUM(so.total), 0) AS total_revenue
		 FROM orders o
		 LEFT JOIN sub_orders so ON so.order_id = o.id`+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	stats.TotalOrders = summary.TotalOrders
	stats.TotalRevenue = summary.TotalRevenue

	var byMethod []struct {
		PaymentMethod string `db:"payment_method"`
		Count         int64  `db:"count"`
	}
	err = s.db.Select(&byMethod,
		`SELECT o.payment_method AS payment_method, COUNT(DISTINCT o.id) AS count
		 FROM orders o
		 LEFT JOIN sub_orders so ON so.order_id = o.id`+where+
			` GROUP BY o.payment_method`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	for _, row := range byMethod {
		stats.OrdersByPaymentMethod[row.PaymentMethod] = row.Count
	}
	return &stats, nil
}

// checkReferences verifies the customer, delivery address, and every seller
// and product in the order actually exist before anything is written.
func (s *OrderService) checkReferences(req *models.CreateOrderRequest) error {
	var exists bool
	if err := s.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)`, req.CustomerID); err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return apperr.NotFound("Customer not found.")
	}

	if err := s.db.Get(&exists,
		`SELECT EXISTS(SELECT 1 FROM whitney_blocks WHERE id = ?)`, req.WhitneyBlockID); err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if !exists {
		return apperr.NotFound("Whitney block not found.")
	}

	return s.checkSubOrderReferences(req.SubOrders)
}

// checkSubOrderReferences verifies every seller and product a sub-order list
// names; shared by creation and sub-order replacement.
func (s *OrderService) checkSubOrderReferences(subOrders []models.SubOrderRequest) error {
	sellerIDs, productIDs := subOrderRefIDs(subOrders)
	if err := s.checkAllExist("users", sellerIDs, "Seller not found."); err != nil {
		return err
	}
	return s.checkAllExist("products", productIDs, "Product not found.")
}

// subOrderRefIDs collects the distinct seller and product IDs a sub-order
// list references.
func subOrderRefIDs(subOrders []models.SubOrderRequest) (sellerIDs, productIDs []int64) {
	sellerIDs = lo.Uniq(lo.Map(subOrders, func(sub models.SubOrderRequest, _ int) int64 {
		return sub.SellerID
	}))
	productIDs = lo.Uniq(lo.FlatMap(subOrders, func(sub models.SubOrderRequest, _ int) []int64 {
		return lo.Map(sub.Products, func(item models.OrderItemRequest, _ int) int64 {
			return item.ProductID
		})
	}))
	return sellerIDs, productIDs
}

func (s *OrderService) checkAllExist(table string, ids []int64, notFoundMsg string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id IN (?)`, table), ids)
	if err != nil {
		return fmt.Errorf("failed to build existence query: %w", err)
	}
	var count int
	if err := s.db.Get(&count, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if count != len(ids) {
		return apperr.NotFound(notFoundMsg)
	}
	return nil
}

func (s *OrderService) insertSubOrders(tx *sqlx.Tx, orderID int64, subOrders []models.SubOrderRequest) error {
	for _, sub := range subOrders {
		result, err := tx.Exec(
			`INSERT INTO sub_orders (order_id, seller_id, subtotal, shipping_cost, total)
			 VALUES (?, ?, ?, ?, ?)`,
			orderID, sub.SellerID, sub.Subtotal, sub.ShippingCost, sub.Total,
		)
		if err != nil {
			return fmt.Errorf("failed to create sub-order: %w", err)
		}
		subOrderID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get sub-order ID: %w", err)
		}

		for _, category := range sub.Categories {
			if _, err := tx.Exec(
				`INSERT INTO sub_order_categories (sub_order_id, category) VALUES (?, ?)`,
				subOrderID, category,
			); err != nil {
				return fmt.Errorf("failed to store sub-order category: %w", err)
			}
		}

		for _, item := range sub.Products {
			if _, err := tx.Exec(
				`INSERT INTO order_items (sub_order_id, product_id, qty, seller_price, profit_margin)
				 VALUES (?, ?, ?, ?, ?)`,
				subOrderID, item.ProductID, item.Qty, item.SellerPrice, item.ProfitMargin,
			); err != nil {
				return fmt.Errorf("failed to store order item: %w", err)
			}
		}
	}
	return nil
}

func (s *OrderService) loadSubOrders(orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := lo.Map(orders, func(o *models.Order, _ int) int64 { return o.ID })
	query, args, err := sqlx.In(`SELECT * FROM sub_orders WHERE order_id IN (?)`, orderIDs)
	if err != nil {
		return fmt.Errorf("failed to build sub-order query: %w", err)
	}
	var subOrders []models.SubOrder
	if err := s.db.Select(&subOrders, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if len(subOrders) > 0 {
		subOrderIDs := lo.Map(subOrders, func(so models.SubOrder, _ int) int64 { return so.ID })

		query, args, err = sqlx.In(
			`SELECT sub_order_id, category FROM sub_order_categories WHERE sub_order_id IN (?)`,
			subOrderIDs)
		if err != nil {
			return fmt.Errorf("failed to build category query: %w", err)
		}
		var categories []struct {
			SubOrderID int64  `db:"sub_order_id"`
			Category   string `db:"category"`
		}
		if err := s.db.Select(&categories, s.db.Rebind(query), args...); err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		query, args, err = sqlx.In(`SELECT * FROM order_items WHERE sub_order_id IN (?)`, subOrderIDs)
		if err != nil {
			return fmt.Errorf("failed to build item query: %w", err)
		}
		var items []models.OrderItem
		if err := s.db.Select(&items, s.db.Rebind(query), args...); err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		for i := range subOrders {
			so := &subOrders[i]
			so.Categories = make([]string, 0)
			for _, c := range categories {
				if c.SubOrderID == so.ID {
					so.Categories = append(so.Categories, c.Category)
				}
			}
			so.Items = lo.Filter(items, func(item models.OrderItem, _ int) bool {
				return item.SubOrderID == so.ID
			})
		}
	}

	for _, order := range orders {
		order.SubOrders = lo.Filter(subOrders, func(so models.SubOrder, _ int) bool {
			return so.OrderID == order.ID
		})
	}
	return nil
}

func buildOrderFilter(filter models.OrderFilter) (string, []any) {
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.CustomerID > 0 {
		clauses = append(clauses, "o.customer_id = ?")
		args = append(args, filter.CustomerID)
	}
	if filter.SellerID > 0 {
		clauses = append(clauses, "so.seller_id = ?")
		args = append(args, filter.SellerID)
	}
	if filter.PaymentMethod != "" {
		clauses = append(clauses, "o.payment_method = ?")
		args = append(args, filter.PaymentMethod)
	}
	if filter.StartDate != nil {
		clauses = append(clauses, "o.created_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		clauses = append(clauses, "o.created_at <= ?")
		args = append(args, *filter.EndDate)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
