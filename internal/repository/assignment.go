package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-dispatch/internal/domain"
	"delivery-dispatch/internal/ports/assigntx"
)

// AssignmentRepo represents assignment record repository. Assignment rows
// are append-only; the pass writes them inside WithTx.
type AssignmentRepo struct {
	db *pgxpool.Pool
}

// NewAssignmentRepo creates a new AssignmentRepo.
func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *AssignmentRepo) WithTx(ctx context.Context, fn func(tx assigntx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// rollback on panic
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

const assignmentColumns = `id, order_id, partner_id, ts, status, reason`

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var a domain.Assignment
	err := row.Scan(&a.ID, &a.OrderID, &a.PartnerID, &a.Timestamp, &a.Status, &a.Reason)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns assignment records matching the filter, newest first.
func (r *AssignmentRepo) List(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	q := `SELECT ` + assignmentColumns + ` FROM assignments`
	args := make([]any, 0, 2)
	where := ""
	if f.Status != nil {
		args = append(args, *f.Status)
		where = fmt.Sprintf(" WHERE status=$%d", len(args))
	}
	if f.PartnerID != nil {
		args = append(args, *f.PartnerID)
		if where == "" {
			where = fmt.Sprintf(" WHERE partner_id=$%d", len(args))
		} else {
			where += fmt.Sprintf(" AND partner_id=$%d", len(args))
		}
	}
	q += where + ` ORDER BY ts DESC, id DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// ListAll returns every assignment record in insertion order, for metrics.
func (r *AssignmentRepo) ListAll(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+assignmentColumns+` FROM assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// ListPendingOrders - returns all pending orders in creation order.
func (r *TxRepo) ListPendingOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+orderColumns+`
        FROM orders
        WHERE status = $1
        ORDER BY created_at ASC, id ASC
    `, domain.OrderPending)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	defer rows.Close()
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list pending orders: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// ListActivePartnersForUpdate - returns all active partners with their rows
// locked for the duration of the transaction. The locks serialize
// concurrent passes so two passes cannot double-book a partner.
func (r *TxRepo) ListActivePartnersForUpdate(ctx context.Context) ([]domain.Partner, error) {
	rows, err := r.tx.Query(ctx, `
        SELECT `+partnerColumns+`
        FROM partners
        WHERE status = $1
        ORDER BY id ASC
        FOR UPDATE
    `, domain.PartnerActive)
	if err != nil {
		return nil, fmt.Errorf("list active partners: %w", err)
	}
	defer rows.Close()
	out := make([]domain.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("list active partners: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// InsertAssignment - appends an assignment record and fills its ID.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO assignments (order_id, partner_id, ts, status, reason)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, a.OrderID, a.PartnerID, a.Timestamp, a.Status, a.Reason).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// MarkOrderAssigned - transitions a pending order to assigned.
func (r *TxRepo) MarkOrderAssigned(ctx context.Context, orderID, partnerID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, assigned_to = $3, updated_at = now()
        WHERE id = $1 AND status = $4
    `, orderID, domain.OrderAssigned, partnerID, domain.OrderPending)
	if err != nil {
		return fmt.Errorf("mark order %d assigned: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d is not pending", orderID)
	}
	return nil
}

// IncrementPartnerLoad - adjusts a partner's current load by delta,
// refusing to leave the [0, capacity] range.
func (r *TxRepo) IncrementPartnerLoad(ctx context.Context, partnerID int64, delta int) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET current_load = current_load + $2, updated_at = now()
        WHERE id = $1
          AND current_load + $2 BETWEEN 0 AND $3
    `, partnerID, delta, domain.Capacity)
	if err != nil {
		return fmt.Errorf("increment partner %d load: %w", partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %d load out of range (delta %d)", partnerID, delta)
	}
	return nil
}

// GetOrderByNumber - returns an order by its external number.
func (r *TxRepo) GetOrderByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", number, err)
	}
	return o, nil
}

// SetOrderStatus - updates an order's lifecycle status.
func (r *TxRepo) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders SET status = $2, updated_at = now() WHERE id = $1
    `, orderID, status)
	if err != nil {
		return fmt.Errorf("set order %d status: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

// ClearOrderAssignment - returns an order to pending with no partner.
func (r *TxRepo) ClearOrderAssignment(ctx context.Context, orderID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, assigned_to = NULL, updated_at = now()
        WHERE id = $1
    `, orderID, domain.OrderPending)
	if err != nil {
		return fmt.Errorf("clear order %d assignment: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

// AddPartnerCompleted - bumps the partner's completed order counter.
func (r *TxRepo) AddPartnerCompleted(ctx context.Context, partnerID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET completed_orders = completed_orders + 1, updated_at = now()
        WHERE id = $1
    `, partnerID)
	if err != nil {
		return fmt.Errorf("add partner %d completed: %w", partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %d not found", partnerID)
	}
	return nil
}

// AddPartnerCancelled - bumps the partner's cancelled order counter.
func (r *TxRepo) AddPartnerCancelled(ctx context.Context, partnerID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE partners
        SET cancelled_orders = cancelled_orders + 1, updated_at = now()
        WHERE id = $1
    `, partnerID)
	if err != nil {
		return fmt.Errorf("add partner %d cancelled: %w", partnerID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("partner %d not found", partnerID)
	}
	return nil
}
