package channel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"soldout-pos/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.PaymentChannel, error) {
	const q = `
SELECT id::text, name, is_system_channel
FROM payment_channels
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentChannel
	for rows.Next() {
		var ch domain.PaymentChannel
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.IsSystemChannel); err != nil {
			return nil, err
		}
		result = append(result, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.PaymentChannel, error) {
	const q = `
SELECT id::text, name, is_system_channel
FROM payment_channels
WHERE id = $1
`
	return r.fetch(ctx, q, id)
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.PaymentChannel, error) {
	const q = `
SELECT id::text, name, is_system_channel
FROM payment_channels
WHERE name = $1
`
	return r.fetch(ctx, q, name)
}

func (r *postgresRepo) Create(ctx context.Context, name string) (*domain.PaymentChannel, error) {
	const q = `
INSERT INTO payment_channels (name, is_system_channel)
VALUES ($1, false)
RETURNING id::text, name, is_system_channel
`
	var ch domain.PaymentChannel
	if err := r.pool.QueryRow(ctx, q, name).Scan(&ch.ID, &ch.Name, &ch.IsSystemChannel); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Delete refuses to remove system channels at the SQL level so the guard
// holds even if a caller skips the service check.
func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	ch, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ch.IsSystemChannel {
		return domain.ErrChannelProtected
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM payment_channels WHERE id = $1 AND NOT is_system_channel`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetch(ctx context.Context, q string, arg any) (*domain.PaymentChannel, error) {
	var ch domain.PaymentChannel
	if err := r.pool.QueryRow(ctx, q, arg).Scan(&ch.ID, &ch.Name, &ch.IsSystemChannel); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}
