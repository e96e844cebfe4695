package domain

import (
	"fmt"
	"strings"
	"unicode"
)

type BankAccount struct {
	BankName      string
	AccountNumber string
	IBAN          string
	AccountHolder string
	BranchCode    string
}

// IBANRule describes the locale-specific IBAN shape. Length includes the country prefix.
type IBANRule struct {
	CountryPrefix string
	Length        int
}

var DefaultIBANRule = IBANRule{CountryPrefix: "TR", Length: 26}

// NormalizeIBAN strips spaces and upper-cases the value.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}

func (r IBANRule) Validate(iban string) error {
	iban = NormalizeIBAN(iban)
	if !strings.HasPrefix(iban, r.CountryPrefix) {
		return fmt.Errorf("%w: iban must start with %s", ErrInvalidBankAccount, r.CountryPrefix)
	}
	if len(iban) != r.Length {
		return fmt.Errorf("%w: iban must be %d characters, got %d", ErrInvalidBankAccount, r.Length, len(iban))
	}
	for _, ch := range iban[2:] {
		if !isASCIIAlnum(ch) {
			return fmt.Errorf("%w: iban contains %q", ErrInvalidBankAccount, ch)
		}
	}
	if ibanMod97(iban) != 1 {
		return fmt.Errorf("%w: iban checksum mismatch", ErrInvalidBankAccount)
	}
	return nil
}

// Validate checks the account against rule and returns a normalized copy.
func (a BankAccount) Validate(rule IBANRule) (BankAccount, error) {
	a.BankName = strings.TrimSpace(a.BankName)
	a.AccountHolder = strings.TrimSpace(a.AccountHolder)
	a.AccountNumber = strings.TrimSpace(a.AccountNumber)
	a.BranchCode = strings.TrimSpace(a.BranchCode)
	a.IBAN = NormalizeIBAN(a.IBAN)

	if a.BankName == "" {
		return BankAccount{}, fmt.Errorf("%w: bank name is required", ErrInvalidBankAccount)
	}
	if err := rule.Validate(a.IBAN); err != nil {
		return BankAccount{}, err
	}
	if a.AccountNumber != "" {
		if len(a.AccountNumber) < 6 || len(a.AccountNumber) > 34 {
			return BankAccount{}, fmt.Errorf("%w: account number must be 6-34 characters", ErrInvalidBankAccount)
		}
		for _, ch := range a.AccountNumber {
			if !isASCIIAlnum(ch) {
				return BankAccount{}, fmt.Errorf("%w: account number contains %q", ErrInvalidBankAccount, ch)
			}
		}
	}
	return a, nil
}

func (a BankAccount) IsZero() bool {
	return a == BankAccount{}
}

// ibanMod97 computes the ISO 13616 remainder over the rearranged IBAN.
func ibanMod97(iban string) int {
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, ch := range rearranged {
		switch {
		case ch >= '0' && ch <= '9':
			rem = (rem*10 + int(ch-'0')) % 97
		default:
			v := int(unicode.ToUpper(ch)-'A') + 10
			rem = (rem*100 + v) % 97
		}
	}
	return rem
}

func isASCIIAlnum(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
