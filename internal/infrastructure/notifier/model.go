package notifier

import "time"

type WithdrawalCallbackPayload struct {
	WithdrawalID  string     `json:"withdrawal_id"`
	Reference     string     `json:"reference"`
	SellerID      string     `json:"seller_id"`
	Amount        string     `json:"amount"`
	Status        string     `json:"status"`
	AdminNote     string     `json:"admin_note,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}
