package request

import "github.com/shopspring/decimal"

type BankAccountRequest struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban"`
	AccountHolder string `json:"accountHolder"`
	BranchCode    string `json:"branchCode"`
}

// CreateWithdrawalRequest without bankAccount pays out to the saved account.
type CreateWithdrawalRequest struct {
	Amount      decimal.Decimal     `json:"amount"`
	BankAccount *BankAccountRequest `json:"bankAccount,omitempty"`
}
