package product

import (
	"context"
	"errors"
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

const productColumns = `id::text, name, price::text, COALESCE(description, ''), category_id::text, attributes, variants, stock, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE lower(name) = lower($1)
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get name=%s error=%v", name, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, price, description, category_id, attributes, variants, stock)
VALUES ($1, $2::numeric, NULLIF($3, ''), $4, $5, $6, $7)
RETURNING ` + productColumns + `
`
	created, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.Name,
		p.Price.String(),
		p.Description,
		p.CategoryID,
		attributesOrEmpty(p.Attributes),
		variantsOrEmpty(p.Variants),
		p.Stock,
	))
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%s", created.ID, created.Name)
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    price = $3::numeric,
    description = NULLIF($4, ''),
    category_id = $5,
    attributes = $6,
    variants = $7,
    stock = $8
WHERE id = $1
RETURNING ` + productColumns + `
`
	updated, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID,
		p.Name,
		p.Price.String(),
		p.Description,
		p.CategoryID,
		attributesOrEmpty(p.Attributes),
		variantsOrEmpty(p.Variants),
		p.Stock,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func attributesOrEmpty(attrs []domain.Attribute) []domain.Attribute {
	if attrs == nil {
		return []domain.Attribute{}
	}
	return attrs
}

func variantsOrEmpty(variants []domain.Variant) []domain.Variant {
	if variants == nil {
		return []domain.Variant{}
	}
	return variants
}

// pgx.Rows satisfies pgx.Row, so this covers single- and multi-row reads.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		priceText  string
		categoryID *string
	)
	if err := row.Scan(&p.ID, &p.Name, &priceText, &p.Description, &categoryID, &p.Attributes, &p.Variants, &p.Stock, &p.CreatedAt); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, err
	}
	p.Price = price
	p.CategoryID = categoryID
	return &p, nil
}
