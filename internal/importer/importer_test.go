package importer

import (
	"context"
	"strings"
	"testing"

	"credit-ledger/internal/domain"
	customersvc "credit-ledger/internal/service/customer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrar struct {
	seenEmails map[string]bool
	inputs     []customersvc.RegisterInput
	failWith   error
}

func newStubRegistrar() *stubRegistrar {
	return &stubRegistrar{seenEmails: map[string]bool{}}
}

func (s *stubRegistrar) Register(_ context.Context, in customersvc.RegisterInput) (*domain.Customer, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if s.seenEmails[in.Email] {
		return nil, domain.Conflictf("email already registered")
	}
	s.seenEmails[in.Email] = true
	s.inputs = append(s.inputs, in)
	return &domain.Customer{ID: int64(len(s.inputs)), Email: in.Email}, nil
}

const header = "first_name,last_name,cpf,email,password,income,zip_code,street\n"

func TestRunImportsRows(t *testing.T) {
	csv := header +
		"Wallax,Mello,28475934625,wallax@email.com,1234,1100.0,80030-110,Rua da Cachorra\n" +
		"Camila,Cavalcante,45851616050,camila@email.com,1234,1000.0,000000,Rua da Camila\n"

	reg := newStubRegistrar()
	imp := NewCSVImporter(strings.NewReader(csv), reg, nil)

	imported, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	require.Len(t, reg.inputs, 2)
	assert.Equal(t, "wallax@email.com", reg.inputs[0].Email)
	assert.Equal(t, "28475934625", reg.inputs[0].CPF)
	assert.True(t, reg.inputs[0].Income.Equal(decimal.RequireFromString("1100.0")))
	assert.Equal(t, "Rua da Camila", reg.inputs[1].Street)
}

func TestRunSkipsAlreadyRegistered(t *testing.T) {
	csv := header +
		"Wallax,Mello,28475934625,wallax@email.com,1234,1100.0,80030-110,Rua da Cachorra\n" +
		"Wallax,Mello,28475934625,wallax@email.com,1234,1100.0,80030-110,Rua da Cachorra\n" +
		"Camila,Cavalcante,45851616050,camila@email.com,1234,1000.0,000000,Rua da Camila\n"

	reg := newStubRegistrar()
	imp := NewCSVImporter(strings.NewReader(csv), reg, nil)

	imported, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
}

func TestRunSkipsBlankLines(t *testing.T) {
	csv := header +
		"\n" +
		"Wallax,Mello,28475934625,wallax@email.com,1234,1100.0,80030-110,Rua da Cachorra\n" +
		",,,,,,,\n"

	reg := newStubRegistrar()
	imp := NewCSVImporter(strings.NewReader(csv), reg, nil)

	imported, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
}

func TestRunBadIncome(t *testing.T) {
	csv := header +
		"Wallax,Mello,28475934625,wallax@email.com,1234,not-a-number,80030-110,Rua da Cachorra\n"

	reg := newStubRegistrar()
	imp := NewCSVImporter(strings.NewReader(csv), reg, nil)

	imported, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parse income")
	assert.Equal(t, 0, imported)
}

func TestRunStopsOnUnexpectedError(t *testing.T) {
	csv := header +
		"Wallax,Mello,28475934625,wallax@email.com,1234,1100.0,80030-110,Rua da Cachorra\n"

	reg := newStubRegistrar()
	reg.failWith = assert.AnError
	imp := NewCSVImporter(strings.NewReader(csv), reg, nil)

	imported, err := imp.Run(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, imported)
}
