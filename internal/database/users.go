package database

import (
	"context"

	"github.com/google/uuid"
)

const staffUserColumns = `id, full_name, email, hashed_password, role, created_at`

const getStaffUserByEmail = `SELECT ` + staffUserColumns + ` FROM staff_users WHERE email = $1`

func (q *Queries) GetStaffUserByEmail(ctx context.Context, email string) (StaffUser, error) {
	var u StaffUser
	err := q.db.QueryRow(ctx, getStaffUserByEmail, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

const getStaffUserByID = `SELECT ` + staffUserColumns + ` FROM staff_users WHERE id = $1`

func (q *Queries) GetStaffUserByID(ctx context.Context, id uuid.UUID) (StaffUser, error) {
	var u StaffUser
	err := q.db.QueryRow(ctx, getStaffUserByID, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}

type CreateStaffUserParams struct {
	FullName       string
	Email          string
	HashedPassword string
	Role           string
}

const createStaffUser = `INSERT INTO staff_users (full_name, email, hashed_password, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, role = EXCLUDED.role
RETURNING ` + staffUserColumns

func (q *Queries) CreateStaffUser(ctx context.Context, arg CreateStaffUserParams) (StaffUser, error) {
	var u StaffUser
	err := q.db.QueryRow(ctx, createStaffUser, arg.FullName, arg.Email, arg.HashedPassword, arg.Role).
		Scan(&u.ID, &u.FullName, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt)
	return u, err
}
