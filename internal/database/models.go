package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Order is the durable record of a customer order. Items is the jsonb
// blob of line items exactly as the customer submitted them.
type Order struct {
	ID                  uuid.UUID
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
	Acknowledged        bool
	CreatedAt           time.Time
}

type MenuItem struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	Price       pgtype.Numeric
	Category    string
	IsAvailable bool
}

// Setting is a single-row configuration entry keyed by name.
type Setting struct {
	Key       string
	Value     bool
	UpdatedAt time.Time
}

type StaffUser struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	HashedPassword string
	Role           string
	CreatedAt      time.Time
}
