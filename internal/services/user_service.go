package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"greenmarket/internal/apperr"
	"greenmarket/internal/config"
	"greenmarket/internal/models"
)

const otpTTL = 15 * time.Minute

type UserService struct {
	db     *sqlx.DB
	logger zerolog.Logger
	mailer Mailer
}

func NewUserService(db *sqlx.DB, logger zerolog.Logger, mailer Mailer) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
		mailer: mailer,
	}
}

func (s *UserService) Signup(req *models.SignupRequest) (*models.User, error) {
	if req.AccountType == string(models.AccountTypeAdmin) {
		return nil, apperr.Unauthorized("Admin account creation is not allowed.")
	}

	if req.ProductType == string(models.ProductTypeCannabis) && req.OlccNumber == "" {
		return nil, apperr.BadRequest("OLCC number is required for cannabis product type.")
	}

	existing, found, err := s.getByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if found && existing != nil {
		return nil, apperr.BadRequest("Email already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	olccNumber := "--"
	if req.ProductType == string(models.ProductTypeCannabis) {
		olccNumber = req.OlccNumber
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	counter, err := nextCounterValue(tx, CounterUserID, SeedUserID)
	if err != nil {
		return nil, err
	}
	displayID := models.UserDisplayID(req.FirstName, req.LastName, counter)

	result, err := tx.Exec(
		`INSERT INTO users (display_id, account_type, account_status, first_name, last_name,
			company_name, email, phone, address, product_type, olcc_number, password_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		displayID, req.AccountType, models.AccountStatusPending, req.FirstName, req.LastName,
		req.CompanyName, req.Email, req.Phone, req.Address, req.ProductType, olccNumber, string(hashed),
	)
	if err != nil {
		// The pre-check races with the unique index under concurrent signups.
		if isDuplicateKey(err) {
			return nil, apperr.BadRequest("Email already exists.")
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("display_id", user.DisplayID).
		Str("email", user.Email).
		Msg("User signed up, pending admin approval")
	return user, nil
}

// Authenticate verifies credentials and the account lifecycle gate; it
// returns the user only when a session token may be issued.
func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	user, found, err := s.getByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("User not found.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, apperr.Unauthorized("Invalid credentials.")
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("User authenticated")
	return user, nil
}

func (s *UserService) ForgotPassword(email string) error {
	user, found, err := s.getByEmail(email)
	if err != nil {
		return err
	}
	if !found {
		return apperr.NotFound("User not found with this email.")
	}

	switch user.AccountStatus {
	case models.AccountStatusRejected:
		return apperr.Unauthorized("Your account has been rejected. Please contact support.")
	case models.AccountStatusPending:
		return apperr.Unauthorized("Your account is in pending state. Please wait for admin approval.")
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	expires := time.Now().Add(otpTTL)
	_, err = s.db.Exec(
		`UPDATE users SET reset_otp_hash = ?, reset_otp_expires = ?, reset_allowed = FALSE WHERE id = ?`,
		string(hashed), expires, user.ID,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("Error storing reset OTP")
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf("<p>Your reset OTP is <strong>%s</strong></p>", otp)
	if err := s.mailer.Send(user.Email, "Password Reset Request", body); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Error sending reset email")
		// The emailed code never reached the user, so the stored one must not
		// stay redeemable.
		if _, clearErr := s.db.Exec(
			`UPDATE users SET reset_otp_hash = NULL, reset_otp_expires = NULL WHERE id = ?`, user.ID,
		); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("user_id", user.ID).Msg("Error clearing reset OTP")
		}
		return apperr.Internal("Failed to send email.")
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("Password reset OTP sent")
	return nil
}

func (s *UserService) VerifyOTP(email, otp string) error {
	user, found, err := s.getByEmail(email)
	if err != nil {
		return err
	}
	if !found || !user.ResetOTPRedeemable(time.Now()) {
		return apperr.BadRequest("Invalid or expired OTP.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.ResetOTPHash), []byte(otp)); err != nil {
		return apperr.BadRequest("Invalid or expired OTP.")
	}

	_, err = s.db.Exec(
		`UPDATE users SET reset_allowed = TRUE, reset_otp_hash = NULL, reset_otp_expires = NULL WHERE id = ?`,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark reset allowed: %w", err)
	}
	return nil
}

func (s *UserService) ResetPassword(email, password string) error {
	user, found, err := s.getByEmail(email)
	if err != nil {
		return err
	}
	if !found || !user.ResetAllowed {
		return apperr.BadRequest("User not found or reset password not initiated.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE users SET password_hash = ?, reset_allowed = FALSE WHERE id = ?`,
		string(hashed), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("Password reset completed")
	return nil
}

func (s *UserService) GetByID(userID int64) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT * FROM users WHERE id = ?`, userID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User not found.")
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Error fetching user")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByDisplayID(displayID string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT * FROM users WHERE display_id = ?`, displayID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("User not found with provided custom ID.")
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

// ListAccountRequests returns all non-admin accounts still awaiting review.
func (s *UserService) ListAccountRequests() ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.Select(&users,
		`SELECT * FROM users WHERE account_type != ? AND account_status = ? ORDER BY created_at DESC`,
		models.AccountTypeAdmin, models.AccountStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return users, nil
}

func (s *UserService) ListApprovedUsers() ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.Select(&users,
		`SELECT * FROM users
		 WHERE account_type != ? AND account_status = ? AND is_blocked = FALSE
		 ORDER BY created_at DESC`,
		models.AccountTypeAdmin, models.AccountStatusApproved,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateAccountStatus(userID int64, req *models.AccountStatusRequest) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}

	status := models.AccountStatus(req.Status)
	if err := user.CanTransitionTo(status); err != nil {
		return err
	}

	if status == models.AccountStatusRejected {
		if req.RejectionReason == "" {
			return apperr.BadRequest("Reason of rejection is required when rejecting an account request.")
		}
		_, err = s.db.Exec(
			`UPDATE users SET account_status = ?, rejection_reason = ? WHERE id = ?`,
			status, req.RejectionReason, userID,
		)
	} else {
		_, err = s.db.Exec(`UPDATE users SET account_status = ? WHERE id = ?`, status, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Str("status", req.Status).Msg("Account status updated")
	return nil
}

func (s *UserService) BlockUser(userID int64) error {
	result, err := s.db.Exec(`UPDATE users SET is_blocked = TRUE WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound("User not found.")
	}

	s.logger.Info().Int64("user_id", userID).Msg("User account blocked")
	return nil
}

// SeedAdmin creates the configured admin account if it does not exist yet.
func (s *UserService) SeedAdmin(seed config.AdminSeed) error {
	if !seed.Complete() {
		return fmt.Errorf("incomplete admin seed configuration")
	}

	_, found, err := s.getByEmail(seed.Email)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	counter, err := nextCounterValue(tx, CounterUserID, SeedUserID)
	if err != nil {
		return err
	}
	displayID := models.UserDisplayID(seed.FirstName, seed.LastName, counter)

	_, err = tx.Exec(
		`INSERT INTO users (display_id, account_type, account_status, first_name, last_name,
			company_name, email, phone, address, product_type, olcc_number, password_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		displayID, models.AccountTypeAdmin, models.AccountStatusApproved, seed.FirstName, seed.LastName,
		seed.CompanyName, seed.Email, seed.Phone, seed.Address, seed.ProductType, "--", string(hashed),
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().Str("email", seed.Email).Msg("Admin account seeded")
	return nil
}

func (s *UserService) getByEmail(email string) (*models.User, bool, error) {
	var user models.User
	err := s.db.Get(&user, `SELECT * FROM users WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error fetching user by email")
		return nil, false, fmt.Errorf("database error: %w", err)
	}
	return &user, true, nil
}

// isDuplicateKey reports whether err is a MySQL unique-index violation
// (error 1062).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// generateOTP returns a uniformly random six-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
