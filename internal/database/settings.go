package database

import "context"

const getSetting = `SELECT key, value, updated_at FROM settings WHERE key = $1`

func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	var s Setting
	err := q.db.QueryRow(ctx, getSetting, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

type UpdateSettingParams struct {
	Key   string
	Value bool
}

const updateSetting = `UPDATE settings SET value = $2, updated_at = NOW()
WHERE key = $1
RETURNING key, value, updated_at`

func (q *Queries) UpdateSetting(ctx context.Context, arg UpdateSettingParams) (Setting, error) {
	var s Setting
	err := q.db.QueryRow(ctx, updateSetting, arg.Key, arg.Value).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

const upsertSetting = `INSERT INTO settings (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO NOTHING
RETURNING key, value, updated_at`

// UpsertSetting seeds a setting row without overwriting a staff-set value.
func (q *Queries) UpsertSetting(ctx context.Context, arg UpdateSettingParams) error {
	_, err := q.db.Exec(ctx, upsertSetting, arg.Key, arg.Value)
	return err
}
