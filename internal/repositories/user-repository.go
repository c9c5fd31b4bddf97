package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"insurance-system/internal/entities"
	apperrors "insurance-system/pkg/errors"
)

type UserRepositoryInterface interface {
	FindByLogin(ctx context.Context, login string) (*entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Login, &u.FIO, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := `
		SELECT u.id, u.login, u.fio, u.email, u.password_hash, u.created_at, u.updated_at
		FROM users AS u
		WHERE u.login = $1
	`
	return scanUser(r.storage.QueryRow(ctx, query, login))
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := `
		SELECT u.id, u.login, u.fio, u.email, u.password_hash, u.created_at, u.updated_at
		FROM users AS u
		WHERE u.id = $1
	`
	return scanUser(r.storage.QueryRow(ctx, query, id))
}
