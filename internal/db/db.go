package db

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

func InitDB(dbURL string) *sqlx.DB {
	db, err := sqlx.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("database is not responding:", err)
	}

	log.Println("connected to database")
	return db
}

func RunMigrations(db *sqlx.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS counters (
			name VARCHAR(50) PRIMARY KEY,
			count BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			display_id VARCHAR(20) NOT NULL UNIQUE,
			account_type VARCHAR(10) NOT NULL,
			account_status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			company_name VARCHAR(200) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(50) NOT NULL,
			address VARCHAR(500) NOT NULL,
			product_type VARCHAR(10) NOT NULL,
			olcc_number VARCHAR(50) NOT NULL DEFAULT '--',
			password_hash VARCHAR(255) NOT NULL,
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			rejection_reason TEXT,
			reset_otp_hash VARCHAR(255),
			reset_otp_expires DATETIME,
			reset_allowed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_account_type (account_type),
			INDEX idx_account_status (account_status)
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL UNIQUE,
			image_url VARCHAR(500) NOT NULL,
			product_type VARCHAR(10) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			display_id BIGINT NOT NULL UNIQUE,
			status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			product_name VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			product_category VARCHAR(100) NOT NULL,
			product_type VARCHAR(10) NOT NULL,
			cannabinoid_type VARCHAR(50) NOT NULL,
			strain_type VARCHAR(50) NOT NULL,
			grow_type VARCHAR(50) NOT NULL,
			seller_id BIGINT NOT NULL,
			seller_price DECIMAL(12,2) NOT NULL,
			profit_margin DECIMAL(12,2) NOT NULL DEFAULT 0,
			image_url VARCHAR(500) NOT NULL,
			lab_report_url VARCHAR(500) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_seller_id (seller_id),
			INDEX idx_status (status),
			FOREIGN KEY (seller_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS product_tags (
			product_id BIGINT NOT NULL,
			tag VARCHAR(20) NOT NULL,
			PRIMARY KEY (product_id, tag),
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS whitney_blocks (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			address VARCHAR(500) NOT NULL,
			str_apt_bid VARCHAR(100) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL,
			state VARCHAR(100) NOT NULL,
			zip_code VARCHAR(20) NOT NULL,
			phone_no VARCHAR(50) NOT NULL,
			note TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_user_id (user_id),
			INDEX idx_city_state (city, state),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			display_id BIGINT NOT NULL UNIQUE,
			customer_id BIGINT NOT NULL,
			whitney_block_id BIGINT NOT NULL,
			payment_method VARCHAR(10) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_customer_id (customer_id),
			INDEX idx_payment_method (payment_method),
			FOREIGN KEY (customer_id) REFERENCES users(id),
			FOREIGN KEY (whitney_block_id) REFERENCES whitney_blocks(id)
		);`,
		`CREATE TABLE IF NOT EXISTS sub_orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			seller_id BIGINT NOT NULL,
			subtotal DECIMAL(12,2) NOT NULL,
			shipping_cost DECIMAL(12,2) NOT NULL,
			total DECIMAL(12,2) NOT NULL,
			INDEX idx_order_id (order_id),
			INDEX idx_seller_id (seller_id),
			FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
			FOREIGN KEY (seller_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS sub_order_categories (
			sub_order_id BIGINT NOT NULL,
			category VARCHAR(100) NOT NULL,
			PRIMARY KEY (sub_order_id, category),
			FOREIGN KEY (sub_order_id) REFERENCES sub_orders(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			sub_order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			qty INT NOT NULL,
			seller_price DECIMAL(12,2) NOT NULL,
			profit_margin DECIMAL(12,2) NOT NULL DEFAULT 0,
			INDEX idx_sub_order_id (sub_order_id),
			FOREIGN KEY (sub_order_id) REFERENCES sub_orders(id) ON DELETE CASCADE,
			FOREIGN KEY (product_id) REFERENCES products(id)
		);`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			client_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'PENDING',
			rating DECIMAL(3,1) NOT NULL,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			review TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_product_status (product_id, status),
			FOREIGN KEY (client_id) REFERENCES users(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Fatal("migration failed:", err)
		}
	}
	log.Println("migrations completed")
}
