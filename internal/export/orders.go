// Package export renders orders as CSV for spreadsheet use: one row per
// order item, with the payment channel resolved to its display name.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"soldout-pos/internal/domain"
)

var csvHeaders = []string{"订单ID", "创建时间", "总金额", "状态", "支付渠道", "商品名称", "规格", "数量", "单价", "是否赠品"}

// WriteOrdersCSV writes every order's items to w. Channels are used only
// for the id-to-name lookup; an order referencing a deleted channel
// renders as 未知.
func WriteOrdersCSV(w io.Writer, orders []domain.Order, channels []domain.PaymentChannel) error {
	channelNames := make(map[string]string, len(channels))
	for _, ch := range channels {
		channelNames[ch.ID] = ch.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for _, order := range orders {
		channelName, ok := channelNames[order.PaymentChannelID]
		if !ok {
			channelName = "未知"
		}
		for _, item := range order.Items {
			gift := "否"
			if item.IsGift {
				gift = "是"
			}
			row := []string{
				order.ID,
				order.CreatedAt.Format(time.DateTime),
				order.TotalAmount.StringFixed(2),
				order.Status,
				channelName,
				item.Name,
				item.VariantName,
				fmt.Sprintf("%d", item.Quantity),
				item.UnitPrice.StringFixed(2),
				gift,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row for order %s: %w", order.ID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
