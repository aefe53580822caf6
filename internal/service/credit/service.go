package credit

import (
	"context"
	"errors"
	"time"

	"credit-ledger/internal/domain"
	creditrepo "credit-ledger/internal/repository/credit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Directory resolves credit owners. The customer service implements it.
type Directory interface {
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Service manages the credit ledger: issuing credits and looking them up by
// code or by owning customer.
type Service struct {
	repo      creditrepo.Repository
	directory Directory
}

// New creates a Service.
func New(repo creditrepo.Repository, directory Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// CreateInput carries the validated fields for issuing a credit. Field
// constraints (positive value, 1-48 installments, first installment within
// three months) are enforced at the boundary before this input is built.
type CreateInput struct {
	CustomerID           int64
	CreditValue          decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
}

// Create issues a credit for an existing customer. The credit code is a
// fresh UUID; the unique index on it is the authoritative collision guard,
// so no retry loop here.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Credit, error) {
	owner, err := s.directory.FindByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.Credit{
		CreditCode:           uuid.NewString(),
		CreditValue:          in.CreditValue,
		DayFirstInstallment:  in.DayFirstInstallment,
		NumberOfInstallments: in.NumberOfInstallments,
		Status:               domain.StatusInProgress,
		CustomerID:           owner.ID,
	})
	if err != nil {
		return nil, err
	}
	created.Customer = owner
	return created, nil
}

// ListByCustomer returns every credit owned by customerID, oldest first. An
// unknown id yields an empty list, not an error.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Credit, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// FindByCodeForCustomer fetches one credit by its code, scoped to the
// claimed owner. A known code held by another customer fails with a generic
// message so the caller cannot learn who owns it.
func (s *Service) FindByCodeForCustomer(ctx context.Context, creditCode string, customerID int64) (*domain.Credit, error) {
	// Codes are always UUIDs, so anything that does not parse cannot be in
	// the ledger and never reaches storage.
	if _, err := uuid.Parse(creditCode); err != nil {
		return nil, domain.NotFoundf("Creditcode %s not found", creditCode)
	}

	c, err := s.repo.GetByCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Creditcode %s not found", creditCode)
		}
		return nil, err
	}
	if c.CustomerID != customerID {
		return nil, domain.Ownershipf("contact admin")
	}

	owner, err := s.directory.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.Customer = owner
	return c, nil
}
