package backup

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"soldout-pos/internal/domain"
)

// PostgresRestorer rewrites products, orders and payment channels from a
// backup document. The whole restore is one transaction: either the
// complete backup lands or nothing changes.
type PostgresRestorer struct {
	pool *pgxpool.Pool
}

func NewPostgresRestorer(pool *pgxpool.Pool) *PostgresRestorer {
	return &PostgresRestorer{pool: pool}
}

func (r *PostgresRestorer) Restore(ctx context.Context, b *Backup) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"orders", "products", "payment_channels"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	for _, ch := range b.PaymentChannels {
		const q = `
INSERT INTO payment_channels (id, name, is_system_channel)
VALUES ($1, $2, $3)
`
		if _, err := tx.Exec(ctx, q, ensureID(ch.ID), ch.Name, ch.IsSystemChannel); err != nil {
			return err
		}
	}

	for _, p := range b.Products {
		// Categories are not part of the document; a reference into a
		// category this store does not have degrades to NULL instead of
		// failing the restore.
		const q = `
INSERT INTO products (id, name, price, description, category_id, attributes, variants, stock, created_at)
VALUES ($1, $2, $3::numeric, NULLIF($4, ''), (SELECT id FROM categories WHERE id = $5::uuid), $6, $7, $8, $9)
`
		variants := p.Variants
		if variants == nil {
			variants = []domain.Variant{}
		}
		attrs := p.Attributes
		if attrs == nil {
			attrs = []domain.Attribute{}
		}
		if _, err := tx.Exec(ctx, q, ensureID(p.ID), p.Name, p.Price.String(), p.Description, p.CategoryID, attrs, variants, p.Stock, p.CreatedAt); err != nil {
			return err
		}
	}

	for _, o := range b.Orders {
		const q = `
INSERT INTO orders (id, items, payment_channel_id, total_amount, status, created_at)
VALUES ($1, $2, $3, $4::numeric, $5, $6)
`
		items := o.Items
		if items == nil {
			items = []domain.OrderItem{}
		}
		if _, err := tx.Exec(ctx, q, ensureID(o.ID), items, o.PaymentChannelID, o.TotalAmount.String(), o.Status, o.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ensureID keeps the identity from the backup so references inside the
// document stay intact; a record that somehow lacks one gets a fresh id.
func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
