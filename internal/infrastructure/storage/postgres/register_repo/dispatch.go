// Package register_repo provides the PostgreSQL implementation of the
// dispatch ledger.
package register_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/infrastructure/storage/postgres"
)

const dispatchesTable = "reg_dispatches"

var dispatchColumns = []string{
	"id", "lot_id", "destination", "quantity",
	"dispatched_by", "dispatch_date", "notes", "created_at",
}

// DispatchRepo implements dispatch.Repository.
type DispatchRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewDispatchRepo creates a new dispatch ledger repository.
func NewDispatchRepo(txm *postgres.TxManager) *DispatchRepo {
	return &DispatchRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert appends one ledger record. created_at is assigned by the
// store and read back into the record.
func (r *DispatchRepo) Insert(ctx context.Context, rec *dispatch.Record) error {
	sql := `
		INSERT INTO reg_dispatches
			(id, lot_id, destination, quantity, dispatched_by, dispatch_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING created_at
	`

	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql,
		rec.ID, rec.LotID, rec.Destination, rec.Quantity,
		rec.DispatchedBy, rec.DispatchDate, rec.Notes,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	return nil
}

// GetByID retrieves one ledger record.
func (r *DispatchRepo) GetByID(ctx context.Context, recordID id.ID) (*dispatch.Record, error) {
	q := r.builder.Select(dispatchColumns...).
		From(dispatchesTable).
		Where(squirrel.Eq{"id": recordID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec dispatch.Record
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("dispatch", recordID)
		}
		return nil, apperror.NewDatabase(err)
	}
	return &rec, nil
}

// Update overwrites the amendable fields of an existing record.
// lot_id and created_at never change.
func (r *DispatchRepo) Update(ctx context.Context, rec *dispatch.Record) error {
	q := r.builder.Update(dispatchesTable).
		Set("destination", rec.Destination).
		Set("quantity", rec.Quantity).
		Set("dispatched_by", rec.DispatchedBy).
		Set("dispatch_date", rec.DispatchDate).
		Set("notes", rec.Notes).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("dispatch", rec.ID)
	}
	return nil
}

// List retrieves ledger records with filtering and pagination.
func (r *DispatchRepo) List(ctx context.Context, filter dispatch.ListFilter) (dispatch.ListResult, error) {
	result := dispatch.ListResult{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.Select(dispatchColumns...).From(dispatchesTable)
	countQ := r.builder.Select("COUNT(*)").From(dispatchesTable)

	applyWhere := func(cond any) {
		q = q.Where(cond)
		countQ = countQ.Where(cond)
	}

	if filter.LotID != nil {
		applyWhere(squirrel.Eq{"lot_id": *filter.LotID})
	}
	if filter.Destination != nil {
		applyWhere(squirrel.Eq{"destination": *filter.Destination})
	}
	if filter.DispatchedBy != "" {
		applyWhere(squirrel.ILike{"dispatched_by": "%" + filter.DispatchedBy + "%"})
	}
	if filter.DateFrom != nil {
		applyWhere(squirrel.GtOrEq{"dispatch_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		applyWhere(squirrel.LtOrEq{"dispatch_date": *filter.DateTo})
	}

	q = q.OrderBy(dispatchOrderClause(filter.OrderBy))
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

// ListByLot returns the full ledger for one lot, oldest first.
func (r *DispatchRepo) ListByLot(ctx context.Context, lotID id.ID) ([]dispatch.Record, error) {
	q := r.builder.Select(dispatchColumns...).
		From(dispatchesTable).
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []dispatch.Record
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, apperror.NewDatabase(err)
	}
	return records, nil
}

// SumByLot computes the dispatched total for one lot store-side.
func (r *DispatchRepo) SumByLot(ctx context.Context, lotID id.ID) (types.Quantity, error) {
	sql := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM reg_dispatches
		WHERE lot_id = $1
	`

	var sumScaled int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, lotID).Scan(&sumScaled)
	if err != nil && err != pgx.ErrNoRows {
		return 0, apperror.NewDatabase(err)
	}
	return types.NewQuantityFromInt64Scaled(sumScaled), nil
}

// dispatchOrderClause whitelists ordering columns for the ledger.
func dispatchOrderClause(orderBy string) string {
	const fallback = "dispatch_date DESC, created_at DESC"
	if orderBy == "" {
		return fallback
	}

	allowed := map[string]bool{
		"dispatch_date": true,
		"created_at":    true,
		"quantity":      true,
		"destination":   true,
	}

	var parts []string
	for _, piece := range strings.Split(orderBy, ",") {
		fields := strings.Fields(strings.TrimSpace(piece))
		if len(fields) == 0 || len(fields) > 2 || !allowed[strings.ToLower(fields[0])] {
			continue
		}
		part := strings.ToLower(fields[0])
		if len(fields) == 2 {
			switch strings.ToUpper(fields[1]) {
			case "ASC":
				part += " ASC"
			case "DESC":
				part += " DESC"
			default:
				continue
			}
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}

// Ensure interface compliance.
var _ dispatch.Repository = (*DispatchRepo)(nil)
