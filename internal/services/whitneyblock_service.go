package services

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"greenmarket/internal/apperr"
	"greenmarket/internal/models"
)

type WhitneyBlockService struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

func NewWhitneyBlockService(db *sqlx.DB, logger zerolog.Logger) *WhitneyBlockService {
	return &WhitneyBlockService{db: db, logger: logger}
}

func (s *WhitneyBlockService) Create(userID int64, req *models.WhitneyBlockRequest) (*models.WhitneyBlock, error) {
	result, err := s.db.Exec(
		`INSERT INTO whitney_blocks (user_id, first_name, last_name, address, str_apt_bid,
			city, state, zip_code, phone_no, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, req.FirstName, req.LastName, req.Address, req.StrAptBid,
		req.City, req.State, req.ZipCode, req.PhoneNo, req.Note,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Error creating whitney block")
		return nil, fmt.Errorf("failed to create whitney block: %w", err)
	}

	blockID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get whitney block ID: %w", err)
	}

	s.logger.Info().Int64("whitney_block_id", blockID).Int64("user_id", userID).Msg("Whitney block created")
	return s.getByID(blockID)
}

// ListForUser returns the caller's address book entries, newest first.
func (s *WhitneyBlockService) ListForUser(userID int64) ([]models.WhitneyBlock, error) {
	blocks := make([]models.WhitneyBlock, 0)
	err := s.db.Select(&blocks,
		`SELECT * FROM whitney_blocks WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return blocks, nil
}

// GetForUser fetches one entry and enforces ownership.
func (s *WhitneyBlockService) GetForUser(userID, blockID int64) (*models.WhitneyBlock, error) {
	block, err := s.getByID(blockID)
	if err != nil {
		return nil, err
	}
	if block.UserID != userID {
		return nil, apperr.BadRequest("Whitney block does not belong to this user.")
	}
	return block, nil
}

func (s *WhitneyBlockService) getByID(blockID int64) (*models.WhitneyBlock, error) {
	var block models.WhitneyBlock
	err := s.db.Get(&block, `SELECT * FROM whitney_blocks WHERE id = ?`, blockID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Whitney block not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &block, nil
}
