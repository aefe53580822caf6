package credit

import (
	"context"
	"testing"
	"time"

	"credit-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo is a lightweight in-memory credit repository for tests.
type memoryRepo struct {
	seq      int64
	byCode   map[string]domain.Credit
	getCalls int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byCode: make(map[string]domain.Credit)}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Credit) (*domain.Credit, error) {
	if _, exists := r.byCode[c.CreditCode]; exists {
		return nil, domain.Conflictf("credit code already issued")
	}
	r.seq++
	c.ID = r.seq
	r.byCode[c.CreditCode] = c
	return &c, nil
}

func (r *memoryRepo) GetByCode(_ context.Context, code string) (*domain.Credit, error) {
	r.getCalls++
	c, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *memoryRepo) ListByCustomer(_ context.Context, customerID int64) ([]domain.Credit, error) {
	credits := make([]domain.Credit, 0)
	for _, c := range r.byCode {
		if c.CustomerID == customerID {
			credits = append(credits, c)
		}
	}
	return credits, nil
}

// stubDirectory resolves a single known customer.
type stubDirectory struct {
	customer *domain.Customer
}

func (d *stubDirectory) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	if d.customer == nil || d.customer.ID != id {
		return nil, domain.NotFoundf("Id %d not found", id)
	}
	return d.customer, nil
}

func testCustomer() *domain.Customer {
	return &domain.Customer{
		ID:        1,
		FirstName: "Wallax",
		LastName:  "Mello",
		CPF:       "28475934625",
		Email:     "wallax@email.com",
		Income:    decimal.RequireFromString("1100.0"),
	}
}

func createInput() CreateInput {
	return CreateInput{
		CustomerID:           1,
		CreditValue:          decimal.RequireFromString("5000.0"),
		DayFirstInstallment:  time.Date(2023, 5, 5, 0, 0, 0, 0, time.UTC),
		NumberOfInstallments: 1,
	}
}

func TestCreate(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, created.Status)
	assert.NotEmpty(t, created.CreditCode)
	_, err = uuid.Parse(created.CreditCode)
	assert.NoError(t, err, "credit code should be a uuid")
	assert.Equal(t, int64(1), created.CustomerID)
	require.NotNil(t, created.Customer)
	assert.Equal(t, "wallax@email.com", created.Customer.Email)
	assert.True(t, created.CreditValue.Equal(decimal.RequireFromString("5000.0")))
}

func TestCreate_UniqueCodes(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	first, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.CreditCode, second.CreditCode)
}

func TestCreate_UnknownCustomer(t *testing.T) {
	svc := New(newMemoryRepo(), &stubDirectory{})

	in := createInput()
	in.CustomerID = 99
	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Id 99 not found")
}

func TestListByCustomer(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	_, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	credits, err := svc.ListByCustomer(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, credits, 2)
}

func TestListByCustomer_EmptyForUnknownID(t *testing.T) {
	svc := New(newMemoryRepo(), &stubDirectory{customer: testCustomer()})

	credits, err := svc.ListByCustomer(context.Background(), 999)
	require.NoError(t, err)
	assert.NotNil(t, credits)
	assert.Empty(t, credits)
}

func TestFindByCodeForCustomer(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	found, err := svc.FindByCodeForCustomer(context.Background(), created.CreditCode, 1)
	require.NoError(t, err)
	assert.Equal(t, created.CreditCode, found.CreditCode)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "wallax@email.com", found.Customer.Email)
}

func TestFindByCodeForCustomer_UnknownCode(t *testing.T) {
	svc := New(newMemoryRepo(), &stubDirectory{customer: testCustomer()})

	code := uuid.NewString()
	_, err := svc.FindByCodeForCustomer(context.Background(), code, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Creditcode "+code+" not found")
}

func TestFindByCodeForCustomer_MalformedCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	_, err := svc.FindByCodeForCustomer(context.Background(), "2", 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Creditcode 2 not found")
	assert.Zero(t, repo.getCalls, "a malformed code should never hit storage")
}

func TestFindByCodeForCustomer_WrongOwner(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, &stubDirectory{customer: testCustomer()})

	created, err := svc.Create(context.Background(), createInput())
	require.NoError(t, err)

	_, err = svc.FindByCodeForCustomer(context.Background(), created.CreditCode, 2)
	require.ErrorIs(t, err, domain.ErrOwnership)
	// generic message, the true owner must not leak
	assert.EqualError(t, err, "contact admin")
}
