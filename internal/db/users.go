package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/coursecatalog/internal/model"
)

// inserts new user into table, returns new user ID.
func (s *pgStore) CreateUser(ctx context.Context, u *model.User) (int, error) {
	query := `
	INSERT INTO users (first_name, last_name, email_address, password, created_at, updated_at)
	VALUES ($1, $2, $3, $4, now(), now())
	RETURNING id;
	`
	var newID int
	err := s.db.QueryRowxContext(ctx, query, u.FirstName, u.LastName, u.EmailAddress, u.Password).Scan(&newID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return 0, translateError(err)
	}
	return newID, nil
}

// fetches user by exact email. returns nil, ErrNotFound if not found.
func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, first_name, last_name, email_address, password, created_at, updated_at
	FROM users
	WHERE email_address = $1;
	`
	err := s.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. Returns nil, ErrNotFound if not found.
func (s *pgStore) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	query := `
	SELECT id, first_name, last_name, email_address, password, created_at, updated_at
	FROM users
	WHERE id = $1;
	`
	err := s.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int("user_id", id).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE email_address = $1);`, email)
	if err != nil {
		log.Error().Err(err).Msg("failed to check email existence")
		return false, err
	}
	return exists, nil
}
