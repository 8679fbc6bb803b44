// Package backup implements lossless export and import of the full
// persisted state: products, orders and payment channels round-trip
// exactly, IDs included, so a restored store behaves like the original.
package backup

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"soldout-pos/internal/domain"
)

// Version tags the backup document format.
const Version = "1.0"

// Backup is the exported document. The version field doubles as the
// import-side marker that the file really is one of ours.
type Backup struct {
	Products        []domain.Product        `json:"products"`
	Orders          []domain.Order          `json:"orders"`
	PaymentChannels []domain.PaymentChannel `json:"paymentChannels"`
	BackupVersion   string                  `json:"__soldout_backup_version__"`
}

// Source provides the table reads the exporter needs.
type Source struct {
	Products interface {
		List(ctx context.Context) ([]domain.Product, error)
	}
	Orders interface {
		List(ctx context.Context) ([]domain.Order, error)
	}
	Channels interface {
		List(ctx context.Context) ([]domain.PaymentChannel, error)
	}
}

// Export reads the three collections concurrently and assembles the
// backup document.
func Export(ctx context.Context, src Source) (*Backup, error) {
	b := Backup{BackupVersion: Version}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := src.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("export products: %w", err)
		}
		b.Products = products
		return nil
	})
	g.Go(func() error {
		orders, err := src.Orders.List(ctx)
		if err != nil {
			return fmt.Errorf("export orders: %w", err)
		}
		b.Orders = orders
		return nil
	})
	g.Go(func() error {
		channels, err := src.Channels.List(ctx)
		if err != nil {
			return fmt.Errorf("export channels: %w", err)
		}
		b.PaymentChannels = channels
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Empty collections still serialize as arrays so the document always
	// passes its own import validation.
	if b.Products == nil {
		b.Products = []domain.Product{}
	}
	if b.Orders == nil {
		b.Orders = []domain.Order{}
	}
	if b.PaymentChannels == nil {
		b.PaymentChannels = []domain.PaymentChannel{}
	}
	return &b, nil
}

// Restorer replaces the whole persisted state with the backup's contents
// in a single transaction.
type Restorer interface {
	Restore(ctx context.Context, b *Backup) error
}

// Import validates the document and hands it to the restorer.
func Import(ctx context.Context, dst Restorer, b *Backup) error {
	if b == nil || b.BackupVersion == "" {
		return &domain.ValidationError{Field: "backup", Reason: "missing version marker"}
	}
	if b.Products == nil || b.Orders == nil || b.PaymentChannels == nil {
		return &domain.ValidationError{Field: "backup", Reason: "document is incomplete"}
	}
	return dst.Restore(ctx, b)
}
