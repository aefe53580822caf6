package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address stores the location fields owned by a customer. It has no identity
// of its own and lives embedded in the customers row.
type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

// Customer represents a registered credit applicant. CPF and email are unique
// across all customers and immutable after registration.
type Customer struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"firstName"`
	LastName     string          `json:"lastName"`
	CPF          string          `json:"cpf"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Income       decimal.Decimal `json:"income"`
	Address      Address         `json:"address"`
	CreatedAt    time.Time       `json:"createdAt"`
}
