package model

import (
	"fmt"

	"github.com/google/uuid"
)

// SupportedCurrencies is the closed set of currency codes the ledger
// accepts. Accounts and transactions never carry anything outside it.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "INR"}

// GenerateUUIDWithSuffix generates a UUID with a given module name as a prefix.
// This is useful for creating unique identifiers with context-specific prefixes.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// IsSupportedCurrency reports whether code belongs to SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
