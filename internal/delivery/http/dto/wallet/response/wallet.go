package response

import "time"

// Amounts are decimal strings with two fractional digits.
type WalletResponse struct {
	WalletID         string    `json:"walletId"`
	SellerID         string    `json:"sellerId"`
	Balance          string    `json:"balance"`
	AvailableBalance string    `json:"availableBalance"`
	PendingBalance   string    `json:"pendingBalance"`
	ReservedBalance  string    `json:"reservedBalance"`
	TotalEarnings    string    `json:"totalEarnings"`
	TotalWithdrawn   string    `json:"totalWithdrawn"`
	TotalSpentOnAds  string    `json:"totalSpentOnAds"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

type TransactionResponse struct {
	TransactionID   string     `json:"transactionId"`
	Type            string     `json:"type"`
	Amount          string     `json:"amount"`
	Status          string     `json:"status"`
	OrderID         string     `json:"orderId,omitempty"`
	CommissionID    string     `json:"commissionId,omitempty"`
	WithdrawalID    string     `json:"withdrawalId,omitempty"`
	AdvertisementID string     `json:"advertisementId,omitempty"`
	ClearsAt        *time.Time `json:"clearsAt,omitempty"`
	Description     string     `json:"description,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

type CommissionResponse struct {
	CommissionID     string     `json:"commissionId"`
	OrderID          string     `json:"orderId"`
	LineItemID       string     `json:"lineItemId"`
	OrderAmount      string     `json:"orderAmount"`
	CommissionRate   string     `json:"commissionRate"`
	CommissionAmount string     `json:"commissionAmount"`
	NetEarning       string     `json:"netEarning"`
	Status           string     `json:"status"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type CommissionsResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}
