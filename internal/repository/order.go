package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"delivery-dispatch/internal/apperr"
	"delivery-dispatch/internal/domain"
)

const orderColumns = `id, order_number, customer_name, customer_phone, customer_address,
	area, items, status, scheduled_for, assigned_to, total_amount, created_at`

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

// itemRow is the jsonb shape of one order line item.
type itemRow struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func itemsToJSON(items []domain.OrderItem) ([]byte, error) {
	rows := make([]itemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, itemRow{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return json.Marshal(rows)
}

func itemsFromJSON(raw []byte) ([]domain.OrderItem, error) {
	var rows []itemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	items := make([]domain.OrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.OrderItem{Name: r.Name, Quantity: r.Quantity, Price: r.Price})
	}
	return items, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o         domain.Order
		rawItems  []byte
		scheduled string
	)
	err := row.Scan(&o.ID, &o.OrderNumber,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Address,
		&o.Area, &rawItems, &o.Status, &scheduled, &o.AssignedTo,
		&o.TotalAmount, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if o.ScheduledFor, err = domain.ParseClock(scheduled); err != nil {
		return nil, fmt.Errorf("order %d scheduled_for: %w", o.ID, err)
	}
	if o.Items, err = itemsFromJSON(rawItems); err != nil {
		return nil, fmt.Errorf("order %d items: %w", o.ID, err)
	}
	return &o, nil
}

// Get - returns order by its ID.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// GetByNumber - returns order by its external order number.
func (r *OrderRepo) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number)
	o, err := scanOrder(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %q: %w", number, err)
	}
	return o, nil
}

// List returns orders matching the filter, newest first.
func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, 2)
	where := ""
	if f.Status != nil {
		args = append(args, *f.Status)
		where = fmt.Sprintf(" WHERE status=$%d", len(args))
	}
	if f.Area != nil {
		args = append(args, *f.Area)
		if where == "" {
			where = fmt.Sprintf(" WHERE lower(area)=lower($%d)", len(args))
		} else {
			where += fmt.Sprintf(" AND lower(area)=lower($%d)", len(args))
		}
	}
	q += where + ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Create - creates a new order.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) (int64, error) {
	rawItems, err := itemsToJSON(o.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal order items: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `
        INSERT INTO orders(order_number, customer_name, customer_phone, customer_address,
            area, items, status, scheduled_for, total_amount)
        VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`,
		o.OrderNumber, o.Customer.Name, o.Customer.Phone, o.Customer.Address,
		o.Area, rawItems, o.Status, o.ScheduledFor.String(), o.TotalAmount,
	).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}
