package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"soldout-pos/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, items, payment_channel_id::text, total_amount::text, status, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) CreateCompleted(ctx context.Context, items []domain.OrderItem, paymentChannelID string, total decimal.Decimal) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insert = `
INSERT INTO orders (items, payment_channel_id, total_amount, status)
VALUES ($1, $2, $3::numeric, $4)
RETURNING ` + orderColumns + `
`
	created, err := scanOrder(tx.QueryRow(ctx, insert, items, paymentChannelID, total.String(), domain.OrderStatusCompleted))
	if err != nil {
		r.logger.Printf("order repo: insert channel=%s error=%v", paymentChannelID, err)
		return nil, err
	}

	for _, item := range items {
		if err := adjustProductStock(ctx, tx, item.ProductID, item.VariantName, -item.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// A vanished product voids the whole checkout.
				r.logger.Printf("order repo: checkout aborted, product %s missing", item.ProductID)
				return nil, fmt.Errorf("product %s: %w", item.ProductID, err)
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s items=%d total=%s", created.ID, len(items), total.String())
	return created, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
FOR UPDATE
`
	o, err := scanOrder(tx.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if o.Status != domain.OrderStatusCompleted {
		return nil, domain.ErrIllegalTransition
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}

	for _, item := range o.Items {
		err := adjustProductStock(ctx, tx, item.ProductID, item.VariantName, item.Quantity)
		if errors.Is(err, domain.ErrNotFound) {
			// The product was deleted after the sale; its restock has no
			// target. The order still cancels.
			r.logger.Printf("order repo: cancel id=%s, product %s gone, restock skipped", id, item.ProductID)
			continue
		}
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatusCancelled
	r.logger.Printf("order repo: cancelled id=%s", id)
	return o, nil
}

// adjustProductStock applies one line's stock delta inside tx. The row is
// locked first so the read-modify-write of the variants document is
// serialized against concurrent checkouts and cancellations. Both
// directions share domain.AdjustStock, which recomputes the aggregate
// from the variant stocks on the variant path.
func adjustProductStock(ctx context.Context, tx pgx.Tx, productID, variantName string, delta int) error {
	var p domain.Product
	err := tx.QueryRow(ctx, `
SELECT id::text, variants, stock
FROM products
WHERE id = $1
FOR UPDATE
`, productID).Scan(&p.ID, &p.Variants, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	p.AdjustStock(variantName, delta)

	if variantName == "" {
		_, err = tx.Exec(ctx, `UPDATE products SET stock = $2 WHERE id = $1`, productID, p.Stock)
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE products SET variants = $2, stock = $3 WHERE id = $1`, productID, p.Variants, p.Stock)
	return err
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		totalText string
	)
	if err := row.Scan(&o.ID, &o.Items, &o.PaymentChannelID, &totalText, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	total, err := decimal.NewFromString(totalText)
	if err != nil {
		return nil, err
	}
	o.TotalAmount = total
	return &o, nil
}
