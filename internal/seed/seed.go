package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type customerSeed struct {
	FirstName string
	LastName  string
	CPF       string
	Email     string
	Password  string
	Income    string
	ZipCode   string
	Street    string
}

// demoCreditCode is fixed so re-running the seeder does not mint duplicates.
const demoCreditCode = "7b5fd464-9f16-44b9-8b20-d4f7eb28b0a1"

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	demo := customerSeed{
		FirstName: "Wallax",
		LastName:  "Mello",
		CPF:       "28475934625",
		Email:     "wallax@email.com",
		Password:  "change-me",
		Income:    "1100.0",
		ZipCode:   "000000",
		Street:    "Rua anonimo, 123",
	}

	customerID, err := upsertCustomer(ctx, pool, demo)
	if err != nil {
		return fmt.Errorf("upsert customer %s: %w", demo.Email, err)
	}

	if err := upsertCredit(ctx, pool, customerID); err != nil {
		return fmt.Errorf("upsert credit for customer %d: %w", customerID, err)
	}

	return nil
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) (int64, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	const q = `
INSERT INTO customers (first_name, last_name, cpf, email, password_hash, income, zip_code, street)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
ON CONFLICT ON CONSTRAINT customers_cpf_key DO UPDATE
SET first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    income = EXCLUDED.income,
    zip_code = EXCLUDED.zip_code,
    street = EXCLUDED.street
RETURNING id
`
	var id int64
	if err := pool.QueryRow(ctx, q, c.FirstName, c.LastName, c.CPF, c.Email, string(hashed), c.Income, c.ZipCode, c.Street).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertCredit(ctx context.Context, pool *pgxpool.Pool, customerID int64) error {
	const q = `
INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id)
VALUES ($1::uuid, $2::numeric, CURRENT_DATE + INTERVAL '1 month', $3, 'IN_PROGRESS', $4)
ON CONFLICT ON CONSTRAINT credits_credit_code_key DO UPDATE
SET credit_value = EXCLUDED.credit_value,
    number_of_installments = EXCLUDED.number_of_installments
`
	_, err := pool.Exec(ctx, q, demoCreditCode, "5000.0", 12, customerID)
	return err
}
