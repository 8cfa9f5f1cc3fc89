package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/domain/lots"
	"bakestock/internal/infrastructure/storage/postgres"
)

const lotsTable = "cat_expired_lots"

var lotColumns = []string{
	"id", "product_id", "product_name", "original_quantity",
	"batch_date", "removal_date", "unit_cost", "selling_price",
	"status", "version", "created_at", "updated_at",
}

// LotRepo implements lots.Repository.
type LotRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewLotRepo creates a new expired lot repository.
func NewLotRepo(txm *postgres.TxManager) *LotRepo {
	return &LotRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new lot. OriginalQuantity is written once here and
// no update path touches it afterwards.
func (r *LotRepo) Create(ctx context.Context, lot *lots.ExpiredLot) error {
	q := r.builder.Insert(lotsTable).
		Columns(lotColumns...).
		Values(
			lot.ID, lot.ProductID, lot.ProductName, lot.OriginalQuantity,
			lot.BatchDate, lot.RemovalDate, lot.UnitCost, lot.SellingPrice,
			lot.Status, lot.Version, lot.CreatedAt, lot.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetByID retrieves a lot by ID.
func (r *LotRepo) GetByID(ctx context.Context, lotID id.ID) (*lots.ExpiredLot, error) {
	q := r.builder.Select(lotColumns...).
		From(lotsTable).
		Where(squirrel.Eq{"id": lotID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot lots.ExpiredLot
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &lot, nil
}

// GetForUpdate retrieves a lot with a row lock. Must run inside a
// transaction; the lock serializes concurrent dispatch writes per lot.
func (r *LotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (*lots.ExpiredLot, error) {
	sql := `
		SELECT id, product_id, product_name, original_quantity,
		       batch_date, removal_date, unit_cost, selling_price,
		       status, version, created_at, updated_at
		FROM cat_expired_lots
		WHERE id = $1
		FOR UPDATE
	`

	var lot lots.ExpiredLot
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &lot, sql, lotID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &lot, nil
}

// UpdateStatus changes only the derived status bookkeeping.
func (r *LotRepo) UpdateStatus(ctx context.Context, lotID id.ID, status lots.Status) error {
	q := r.builder.Update(lotsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": lotID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("lot", lotID)
	}
	return nil
}

// List retrieves lots with filtering and pagination.
func (r *LotRepo) List(ctx context.Context, filter lots.ListFilter) (lots.ListResult, error) {
	result := lots.ListResult{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.Select(lotColumns...).From(lotsTable)
	countQ := r.builder.Select("COUNT(*)").From(lotsTable)

	applyWhere := func(cond any, args ...any) {
		q = q.Where(cond, args...)
		countQ = countQ.Where(cond, args...)
	}

	if filter.Search != "" {
		applyWhere(squirrel.ILike{"product_name": "%" + filter.Search + "%"})
	}
	if filter.Status != nil {
		applyWhere(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ProductID != nil {
		applyWhere(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.RemovedFrom != nil {
		applyWhere(squirrel.GtOrEq{"removal_date": *filter.RemovedFrom})
	}
	if filter.RemovedTo != nil {
		applyWhere(squirrel.LtOrEq{"removal_date": *filter.RemovedTo})
	}

	q = q.OrderBy(orderClause(filter.OrderBy, lotOrderColumns, "removal_date DESC"))
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, apperror.NewDatabase(err)
	}

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, apperror.NewDatabase(err)
	}

	return result, nil
}

var lotOrderColumns = map[string]bool{
	"removal_date": true,
	"batch_date":   true,
	"product_name": true,
	"created_at":   true,
}

// Ensure interface compliance.
var _ lots.Repository = (*LotRepo)(nil)
