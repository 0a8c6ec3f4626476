package accounting

import (
	"fmt"

	"github.com/rentora-app/rentora_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SumDebits adds up the debit side of a set of draft lines.
func SumDebits(lines []domain.DraftLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// SumCredits adds up the credit side of a set of draft lines.
func SumCredits(lines []domain.DraftLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// ValidateLine checks the single-sided line invariant: exactly one of
// debit/credit is non-zero, and neither side is negative.
func ValidateLine(line domain.DraftLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("line for account %s has a negative amount", line.AccountCode)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("line for account %s must have exactly one of debit/credit set", line.AccountCode)
	}
	return nil
}

// ValidateBalanced checks the double-entry invariant over a set of draft
// lines: at least two lines, each line single-sided, and the debit and
// credit sums exactly equal (decimal comparison, no tolerance).
func ValidateBalanced(lines []domain.DraftLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}
	for _, l := range lines {
		if err := ValidateLine(l); err != nil {
			return err
		}
	}
	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("journal entry does not balance: debits %s, credits %s", debits.String(), credits.String())
	}
	return nil
}
