package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const listMenuItems = `SELECT id, name, description, price, category, is_available
FROM menu_items
ORDER BY category, name`

func (q *Queries) ListMenuItems(ctx context.Context) ([]MenuItem, error) {
	rows, err := q.db.Query(ctx, listMenuItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.IsAvailable); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

type SetMenuItemAvailabilityParams struct {
	ID          uuid.UUID
	IsAvailable bool
}

const setMenuItemAvailability = `UPDATE menu_items SET is_available = $2
WHERE id = $1
RETURNING id, name, description, price, category, is_available`

func (q *Queries) SetMenuItemAvailability(ctx context.Context, arg SetMenuItemAvailabilityParams) (MenuItem, error) {
	var m MenuItem
	err := q.db.QueryRow(ctx, setMenuItemAvailability, arg.ID, arg.IsAvailable).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.IsAvailable)
	return m, err
}

type UpsertMenuItemParams struct {
	Name        string
	Description pgtype.Text
	Price       pgtype.Numeric
	Category    string
}

const upsertMenuItem = `INSERT INTO menu_items (name, description, price, category, is_available)
VALUES ($1, $2, $3, $4, TRUE)
ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, category = EXCLUDED.category`

// UpsertMenuItem seeds a menu row, refreshing price and category but
// leaving the staff-controlled availability flag alone.
func (q *Queries) UpsertMenuItem(ctx context.Context, arg UpsertMenuItemParams) error {
	_, err := q.db.Exec(ctx, upsertMenuItem, arg.Name, arg.Description, arg.Price, arg.Category)
	return err
}
