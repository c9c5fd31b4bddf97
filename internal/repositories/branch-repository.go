package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"insurance-system/internal/entities"
	apperrors "insurance-system/pkg/errors"
)

type BranchRepositoryInterface interface {
	GetBranches(ctx context.Context) ([]entities.Branch, error)
	FindBranch(ctx context.Context, id uint64) (*entities.Branch, error)
	FindByName(ctx context.Context, name string) (*entities.Branch, error)
}

type BranchRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBranchRepository(storage *pgxpool.Pool, logger *zap.Logger) BranchRepositoryInterface {
	return &BranchRepository{storage: storage, logger: logger}
}

func scanBranch(row pgx.Row) (*entities.Branch, error) {
	var b entities.Branch
	err := row.Scan(&b.ID, &b.Name, &b.ShortName, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования branch: %w", err)
	}
	return &b, nil
}

func (r *BranchRepository) GetBranches(ctx context.Context) ([]entities.Branch, error) {
	query := `
		SELECT b.id, b.name, b.short_name, b.email, b.created_at, b.updated_at
		FROM branches AS b
		ORDER BY b.name
	`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]entities.Branch, 0)
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		branches = append(branches, *branch)
	}

	return branches, nil
}

func (r *BranchRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.Branch, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"b.id", "b.name", "b.short_name", "b.email", "b.created_at", "b.updated_at",
	).From("branches AS b").Where(where)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanBranch(r.storage.QueryRow(ctx, query, args...))
}

func (r *BranchRepository) FindBranch(ctx context.Context, id uint64) (*entities.Branch, error) {
	return r.findOne(ctx, sq.Eq{"b.id": id})
}

// FindByName ищет филиал по имени из бланка без учёта регистра.
func (r *BranchRepository) FindByName(ctx context.Context, name string) (*entities.Branch, error) {
	return r.findOne(ctx, sq.Or{
		sq.ILike{"b.name": name},
		sq.ILike{"b.short_name": name},
	})
}
