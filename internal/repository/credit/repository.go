package credit

import (
	"context"

	"credit-ledger/internal/domain"
)

// Repository persists and fetches credits.
type Repository interface {
	Create(ctx context.Context, c domain.Credit) (*domain.Credit, error)
	GetByCode(ctx context.Context, creditCode string) (*domain.Credit, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Credit, error)
}
