package domain

import (
	"errors"
	"testing"
)

func TestIBANRuleValidate(t *testing.T) {
	tests := []struct {
		name string
		iban string
		ok   bool
	}{
		{"valid", "TR330006100519786457841326", true},
		{"spaces and lower case", "tr33 0006 1005 1978 6457 8413 26", true},
		{"wrong country", "DE89370400440532013000", false},
		{"too short", "TR33000610051978645784132", false},
		{"bad checksum", "TR340006100519786457841326", false},
		{"punctuation", "TR33-006100519786457841326", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultIBANRule.Validate(tt.iban)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidBankAccount) {
				t.Fatalf("got %v, want ErrInvalidBankAccount", err)
			}
		})
	}
}

func TestBankAccountValidate(t *testing.T) {
	account := BankAccount{BankName: "  İş Bankası ", IBAN: "tr33 0006 1005 1978 6457 8413 26", AccountNumber: "10051978"}
	got, err := account.Validate(DefaultIBANRule)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.BankName != "İş Bankası" || got.IBAN != "TR330006100519786457841326" {
		t.Fatalf("not normalized: %+v", got)
	}

	account.BankName = ""
	if _, err := account.Validate(DefaultIBANRule); !errors.Is(err, ErrInvalidBankAccount) {
		t.Fatalf("missing bank name: got %v", err)
	}

	account.BankName = "Akbank"
	account.AccountNumber = "12-34"
	if _, err := account.Validate(DefaultIBANRule); !errors.Is(err, ErrInvalidBankAccount) {
		t.Fatalf("bad account number: got %v", err)
	}
}
