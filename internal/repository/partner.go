package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
)

const partnerColumns = `id, name, email, phone, status, current_load, areas,
	shift_start, shift_end, rating, completed_orders, cancelled_orders`

// PartnerRepo represents delivery partner repository.
type PartnerRepo struct{ db *pgxpool.Pool }

// NewPartnerRepo creates a new PartnerRepo.
func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo { return &PartnerRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPartner(row rowScanner) (*domain.Partner, error) {
	var (
		p          domain.Partner
		start, end string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Status, &p.CurrentLoad,
		&p.Areas, &start, &end,
		&p.Metrics.Rating, &p.Metrics.CompletedOrders, &p.Metrics.CancelledOrders)
	if err != nil {
		return nil, err
	}
	if p.Shift.Start, err = domain.ParseClock(start); err != nil {
		return nil, fmt.Errorf("partner %d shift start: %w", p.ID, err)
	}
	if p.Shift.End, err = domain.ParseClock(end); err != nil {
		return nil, fmt.Errorf("partner %d shift end: %w", p.ID, err)
	}
	return &p, nil
}

// Get - returns partner by its ID.
func (r *PartnerRepo) Get(ctx context.Context, id int64) (*domain.Partner, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+partnerColumns+` FROM partners WHERE id=$1`, id)
	p, err := scanPartner(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner %d: %w", id, err)
	}
	return p, nil
}

// List returns partners ordered by id. If limit/offset are nil, returns the full list.
func (r *PartnerRepo) List(ctx context.Context, limit, offset *int) ([]domain.Partner, error) {
	q := `SELECT ` + partnerColumns + ` FROM partners ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	capacity := 0
	if limit != nil && *limit > 0 {
		capacity = *limit
	}
	out := make([]domain.Partner, 0, capacity)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create - creates a new partner.
func (r *PartnerRepo) Create(ctx context.Context, p *domain.Partner) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO partners(name, email, phone, status, current_load, areas,
            shift_start, shift_end, rating, completed_orders, cancelled_orders)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`,
		p.Name, p.Email, p.Phone, p.Status, p.CurrentLoad, p.Areas,
		p.Shift.Start.String(), p.Shift.End.String(),
		p.Metrics.Rating, p.Metrics.CompletedOrders, p.Metrics.CancelledOrders,
	).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create partner: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a partner and returns true if a row was affected.
func (r *PartnerRepo) UpdatePartial(ctx context.Context, u domain.PartialPartnerUpdate) (bool, error) {
	var start, end *string
	if u.Shift != nil {
		s, e := u.Shift.Start.String(), u.Shift.End.String()
		start, end = &s, &e
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE partners
        SET
            name        = COALESCE($2, name),
            email       = COALESCE($3, email),
            phone       = COALESCE($4, phone),
            status      = COALESCE($5, status),
            areas       = COALESCE($6, areas),
            shift_start = COALESCE($7, shift_start),
            shift_end   = COALESCE($8, shift_end),
            updated_at  = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Email, u.Phone, u.Status, u.Areas, start, end)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update partner %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}
