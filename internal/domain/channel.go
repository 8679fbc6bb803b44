package domain

// GiftChannelName is the payment channel that expresses "whole order given
// as a gift". Checkout resolves it by name when every cart line is marked
// gift, and forces the order total to zero when it is the effective
// channel.
const GiftChannelName = "整单赠送"

// PaymentChannel is a named settlement method. System channels are the
// seeded built-ins and cannot be deleted.
type PaymentChannel struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsSystemChannel bool   `json:"isSystemChannel"`
}
