package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"credit-ledger/internal/domain"
	customersvc "credit-ledger/internal/service/customer"
	"github.com/shopspring/decimal"
)

// Registrar is the directory surface the importer drives. Going through the
// service keeps imported rows on the same hashing and uniqueness path as the
// API.
type Registrar interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, error)
}

// CSVImporter bulk-registers customers from a CSV export with a header row:
// first_name,last_name,cpf,email,password,income,zip_code,street.
type CSVImporter struct {
	reader    *csv.Reader
	registrar Registrar
	logger    *log.Logger
}

func NewCSVImporter(r io.Reader, registrar Registrar, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{
		reader:    csvr,
		registrar: registrar,
		logger:    logger,
	}
}

// Run parses CSV rows and registers each customer. Rows whose cpf or email is
// already registered are skipped, not fatal. Returns the number imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		in, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if in == nil {
			continue
		}

		if _, err := i.registrar.Register(ctx, *in); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				i.logger.Printf("importer: skipping row %d (%s): %v", line, in.Email, err)
				continue
			}
			return imported, fmt.Errorf("register %s: %w", in.Email, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*customersvc.RegisterInput, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	email := field("email")
	if email == "" {
		// blank or ragged line
		return nil, nil
	}

	income, err := decimal.NewFromString(field("income"))
	if err != nil {
		return nil, fmt.Errorf("parse income %q: %w", field("income"), err)
	}

	return &customersvc.RegisterInput{
		FirstName: field("first_name"),
		LastName:  field("last_name"),
		CPF:       field("cpf"),
		Email:     email,
		Password:  field("password"),
		Income:    income,
		ZipCode:   field("zip_code"),
		Street:    field("street"),
	}, nil
}
