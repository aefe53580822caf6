package customer

import (
	"context"
	"errors"
	"strings"

	"credit-ledger/internal/domain"
	custrepo "credit-ledger/internal/repository/customer"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Service manages the customer lifecycle: registration, lookup, update and
// removal. It owns password hashing; plaintext never reaches the repository.
type Service struct {
	repo       custrepo.Repository
	bcryptCost int
}

// New creates a Service. A non-positive cost falls back to the bcrypt default.
func New(repo custrepo.Repository, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// RegisterInput carries the validated fields accepted at registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	CPF       string
	Email     string
	Password  string
	Income    decimal.Decimal
	ZipCode   string
	Street    string
}

// UpdateInput carries the mutable customer fields. CPF and email are fixed
// after registration.
type UpdateInput struct {
	FirstName string
	LastName  string
	Income    decimal.Decimal
	ZipCode   string
	Street    string
}

// Register hashes the password and persists a new customer. Duplicate cpf or
// email surfaces as a conflict from the storage constraint. Income is checked
// here too, not only in the HTTP layer, so bulk registration paths such as
// the CSV importer cannot slip non-positive values past it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	if !in.Income.IsPositive() {
		return nil, domain.Invalidf("income must be greater than 0")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	c := domain.Customer{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		CPF:          strings.TrimSpace(in.CPF),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		PasswordHash: string(hashed),
		Income:       in.Income,
		Address: domain.Address{
			ZipCode: strings.TrimSpace(in.ZipCode),
			Street:  strings.TrimSpace(in.Street),
		},
	}
	return s.repo.Create(ctx, c)
}

// FindByID loads one customer or reports a not-found with the id spelled out.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFoundf("Id %d not found", id)
		}
		return nil, err
	}
	return c, nil
}

// Update applies the mutable fields to an existing customer and re-persists.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Customer, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	c.Income = in.Income
	c.Address.ZipCode = strings.TrimSpace(in.ZipCode)
	c.Address.Street = strings.TrimSpace(in.Street)

	return s.repo.Update(ctx, *c)
}

// Delete removes a customer. Owned credits go with it through the storage
// cascade.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("Id %d not found", id)
		}
		return err
	}
	return nil
}
