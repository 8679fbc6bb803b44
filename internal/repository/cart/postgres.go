package cart

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context) ([]domain.CartLine, error) {
	const q = `
SELECT product_id::text, variant_name, name, unit_price::text, quantity, is_gift
FROM cart_lines
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var (
			line      domain.CartLine
			priceText string
		)
		if err := rows.Scan(&line.ProductID, &line.VariantName, &line.Name, &priceText, &line.Quantity, &line.IsGift); err != nil {
			return nil, err
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, err
		}
		line.UnitPrice = price
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) Replace(ctx context.Context, lines []domain.CartLine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines`); err != nil {
		return err
	}
	// The position column preserves the order lines were added in, so a
	// restored cart renders exactly as the operator left it.
	for i, line := range lines {
		const q = `
INSERT INTO cart_lines (position, product_id, variant_name, name, unit_price, quantity, is_gift)
VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
`
		if _, err := tx.Exec(ctx, q, i, line.ProductID, line.VariantName, line.Name, line.UnitPrice.String(), line.Quantity, line.IsGift); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
