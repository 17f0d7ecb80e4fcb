package services

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"go-shop/internal/apperror"
	"go-shop/internal/models"
	"go-shop/internal/password"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

// Flash messages preserved verbatim from the product copy. The unknown-email
// and wrong-password messages are deliberately distinguishable, which leaks
// account existence; kept as a product decision.
const (
	MsgEmailTaken      = "Email already assigned to a user. Please login."
	MsgEmailUnknown    = "Email not recognised. Try again."
	MsgPasswordInvalid = "Password invalid. Try again."
)

type UserService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserService(db *sql.DB, logger zerolog.Logger) *UserService {
	return &UserService{
		db:     db,
		logger: logger,
	}
}

// Register creates a user with a hashed password. The duplicate pre-check
// gives the friendly error path; the UNIQUE constraint on email is the
// authoritative guard, so a concurrent duplicate surfaces as the same
// conflict via error 1062.
func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	var existingID int
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", req.Email).Scan(&existingID)
	if err == nil {
		return nil, apperror.NewConflictError(MsgEmailTaken, nil)
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, apperror.NewDatabaseError("failed to check existing user", err)
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, apperror.New(apperror.InternalError, "failed to hash password", err)
	}

	result, err := s.db.Exec(
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		req.Email, hashed, req.Name,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, apperror.NewConflictError(MsgEmailTaken, err)
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	userID, err := result.LastInsertId()
	if err != nil {
		s.logger.Error().Err(err).Msg("Error getting user ID")
		return nil, apperror.NewDatabaseError("failed to get user ID", err)
	}

	user, err := s.GetUserByID(int(userID))
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return user, nil
}

// Authenticate checks an email/password pair against the credential store.
func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	var user models.User

	err := s.db.QueryRow(
		"SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?",
		req.Email,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewAuthError(MsgEmailUnknown, nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, apperror.NewDatabaseError("failed to query user", err)
	}

	if !password.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, apperror.NewAuthError(MsgPasswordInvalid, nil)
	}

	s.logger.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return &user, nil
}

func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(
		"SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?",
		userID,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("Error fetching user")
		return nil, apperror.NewDatabaseError("failed to fetch user", err)
	}

	return &user, nil
}
