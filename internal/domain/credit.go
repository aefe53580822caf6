package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status tracks the review state of a credit.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusDenied     Status = "DENIED"
)

// Credit is a loan issued to exactly one customer. Clients look it up by
// CreditCode, never by the internal id.
type Credit struct {
	ID                   int64
	CreditCode           string
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	CustomerID           int64
	CreatedAt            time.Time

	// Customer is the resolved owner, populated by the ledger when it has
	// fetched one. The repository leaves it nil.
	Customer *Customer
}

// InstallmentDates returns the due date of every installment, one calendar
// month apart starting at DayFirstInstallment.
func (c Credit) InstallmentDates() []time.Time {
	if c.NumberOfInstallments <= 0 {
		return nil
	}
	dates := make([]time.Time, 0, c.NumberOfInstallments)
	for i := 0; i < c.NumberOfInstallments; i++ {
		dates = append(dates, c.DayFirstInstallment.AddDate(0, i, 0))
	}
	return dates
}

// InstallmentValue splits the principal evenly across installments, rounded
// to cents.
func (c Credit) InstallmentValue() decimal.Decimal {
	if c.NumberOfInstallments <= 0 {
		return decimal.Zero
	}
	return c.CreditValue.DivRound(decimal.NewFromInt(int64(c.NumberOfInstallments)), 2)
}
