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
	"insurance-system/internal/infrastructure/bd"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/types"
)

// Карта полей для фильтрации и сортировки списка заявок.
var requestMap = map[string]string{
	"id":             "r.id",
	"dfa_number":     "r.dfa_number",
	"branch_id":      "r.branch_id",
	"client_name":    "r.client_name",
	"inn":            "r.inn",
	"entity_type":    "r.entity_type",
	"insurance_type": "r.insurance_type",
	"status":         "r.status",
	"created_at":     "r.created_at",
	"updated_at":     "r.updated_at",
}

const requestColumns = `r.id, r.dfa_number, r.branch_id, r.branch_name, r.client_name, r.inn,
	r.entity_type, r.insurance_type, r.insurance_period, r.leasing_subject_info,
	r.has_franchise, r.has_installment, r.has_autostart, r.has_casco_ce,
	r.file_path, r.status, r.date_from, r.date_to, r.comment,
	r.created_by_id, r.created_at, r.updated_at`

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.Request, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.Request, error)
	CreateRequest(ctx context.Context, q Querier, request entities.Request) (uint64, error)
	UpdateRequest(ctx context.Context, q Querier, id uint64, request entities.Request) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.Request, error) {
	var r entities.Request

	err := row.Scan(
		&r.ID, &r.DfaNumber, &r.BranchID, &r.BranchName, &r.ClientName, &r.INN,
		&r.EntityType, &r.InsuranceType, &r.InsurancePeriod, &r.LeasingSubjectInfo,
		&r.HasFranchise, &r.HasInstallment, &r.HasAutostart, &r.HasCascoCE,
		&r.FilePath, &r.Status, &r.DateFrom, &r.DateTo, &r.Comment,
		&r.CreatedByID, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования request: %w", err)
	}

	return &r, nil
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.Request, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"r.dfa_number": pat},
				sq.ILike{"r.client_name": pat},
				sq.ILike{"r.inn": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(r.id)").From("requests AS r")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, requestMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Request{}, 0, nil
	}

	baseBuilder := psql.Select(requestColumns).From("requests AS r")
	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("r.id DESC")
	}
	baseBuilder = bd.ApplyListParams(baseBuilder, filter, requestMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	requests := make([]entities.Request, 0, filter.Limit)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *request)
	}

	return requests, total, nil
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.Request, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(requestColumns).From("requests AS r").Where(sq.Eq{"r.id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanRequest(r.storage.QueryRow(ctx, query, args...))
}

func (r *RequestRepository) CreateRequest(ctx context.Context, q Querier, request entities.Request) (uint64, error) {
	query := `
		INSERT INTO requests (dfa_number, branch_id, branch_name, client_name, inn,
			entity_type, insurance_type, insurance_period, leasing_subject_info,
			has_franchise, has_installment, has_autostart, has_casco_ce,
			file_path, status, date_from, date_to, comment, created_by_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := q.QueryRow(ctx, query,
		request.DfaNumber, request.BranchID, request.BranchName, request.ClientName, request.INN,
		request.EntityType, request.InsuranceType, request.InsurancePeriod, request.LeasingSubjectInfo,
		request.HasFranchise, request.HasInstallment, request.HasAutostart, request.HasCascoCE,
		request.FilePath, request.Status, request.DateFrom, request.DateTo, request.Comment,
		request.CreatedByID,
	).Scan(&newID)

	return newID, err
}

func (r *RequestRepository) UpdateRequest(ctx context.Context, q Querier, id uint64, request entities.Request) error {
	query := `
		UPDATE requests
		SET status = $1, date_from = $2, date_to = $3, comment = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := q.Exec(ctx, query,
		request.Status, request.DateFrom, request.DateTo, request.Comment, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
