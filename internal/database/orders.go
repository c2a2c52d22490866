package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	items, subtotal, tax, total, status, pickup_time, special_instructions,
	acknowledged, created_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.Items, &o.Subtotal, &o.Tax, &o.Total, &o.Status, &o.PickupTime,
		&o.SpecialInstructions, &o.Acknowledged, &o.CreatedAt,
	)
	return o, err
}

type CreateOrderParams struct {
	OrderNumber         string
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	Items               []byte
	Subtotal            pgtype.Numeric
	Tax                 pgtype.Numeric
	Total               pgtype.Numeric
	Status              string
	PickupTime          string
	SpecialInstructions pgtype.Text
}

const createOrder = `INSERT INTO orders (
	order_number, customer_name, customer_email, customer_phone,
	items, subtotal, tax, total, status, pickup_time, special_instructions
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + orderColumns

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.OrderNumber, arg.CustomerName, arg.CustomerEmail, arg.CustomerPhone,
		arg.Items, arg.Subtotal, arg.Tax, arg.Total, arg.Status,
		arg.PickupTime, arg.SpecialInstructions,
	)
	return scanOrder(row)
}

const getOrder = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrder, id))
}

const getOrderByNumber = `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

func (q *Queries) GetOrderByNumber(ctx context.Context, orderNumber string) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderByNumber, orderNumber))
}

type ListOrdersParams struct {
	StartDate pgtype.Timestamptz
	EndDate   pgtype.Timestamptz
	Status    pgtype.Text
	Limit     int32
	Offset    int32
}

const listOrders = `SELECT ` + orderColumns + ` FROM orders
WHERE ($1::timestamptz IS NULL OR created_at >= $1)
  AND ($2::timestamptz IS NULL OR created_at < $2)
  AND ($3::text IS NULL OR status = $3)
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrders,
		arg.StartDate, arg.EndDate, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type UpdateOrderStatusParams struct {
	ID         uuid.UUID
	Status     string
	PrevStatus string
}

// UpdateOrderStatus is a compare-and-swap: it only applies when the row
// still holds PrevStatus, returning pgx.ErrNoRows when a concurrent
// update won.
const updateOrderStatus = `UPDATE orders SET status = $2
WHERE id = $1 AND status = $3
RETURNING ` + orderColumns

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status, arg.PrevStatus)
	return scanOrder(row)
}

const acknowledgeOrder = `UPDATE orders SET acknowledged = TRUE
WHERE id = $1
RETURNING ` + orderColumns

func (q *Queries) AcknowledgeOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, acknowledgeOrder, id))
}
