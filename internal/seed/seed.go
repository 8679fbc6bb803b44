package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"soldout-pos/internal/domain"
)

// Built-in settlement methods. The gift channel is the one checkout
// resolves by name for whole-order gifts; all of them are protected from
// deletion.
var defaultChannels = []domain.PaymentChannel{
	{Name: "微信", IsSystemChannel: true},
	{Name: "支付宝", IsSystemChannel: true},
	{Name: "现金", IsSystemChannel: true},
	{Name: domain.GiftChannelName, IsSystemChannel: true},
}

// EnsureDefaultChannels populates the built-in payment channels exactly
// once. The emptiness guard makes it safe to run on every startup: a
// store upgraded from an older schema version never gets reseeded, and a
// freshly created store gets the populate exactly once.
func EnsureDefaultChannels(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment_channels`).Scan(&count); err != nil {
		return fmt.Errorf("count payment channels: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, ch := range defaultChannels {
		const q = `
INSERT INTO payment_channels (name, is_system_channel)
VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING
`
		if _, err := pool.Exec(ctx, q, ch.Name, ch.IsSystemChannel); err != nil {
			return fmt.Errorf("insert channel %s: %w", ch.Name, err)
		}
	}
	return nil
}
