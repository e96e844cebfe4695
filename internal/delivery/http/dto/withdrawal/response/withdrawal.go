package response

import "time"

type BankAccountResponse struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IBAN          string `json:"iban"`
	AccountHolder string `json:"accountHolder,omitempty"`
	BranchCode    string `json:"branchCode,omitempty"`
}

type WithdrawalResponse struct {
	WithdrawalID  string              `json:"withdrawalId"`
	Reference     string              `json:"reference"`
	SellerID      string              `json:"sellerId"`
	Amount        string              `json:"amount"`
	Status        string              `json:"status"`
	BankAccount   BankAccountResponse `json:"bankAccount"`
	RequestedAt   time.Time           `json:"requestedAt"`
	ProcessedAt   *time.Time          `json:"processedAt,omitempty"`
	AdminNote     string              `json:"adminNote,omitempty"`
	TransactionID string              `json:"transactionId,omitempty"`
}

type WithdrawalsResponse struct {
	Withdrawals []WithdrawalResponse `json:"withdrawals"`
}
