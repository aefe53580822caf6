package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"credit-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB is the pool surface the repository needs. *pgxpool.Pool satisfies it,
// and so does pgxmock in unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db     DB
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(db DB, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{db: db, logger: logger}
}

const customerColumns = `id, first_name, last_name, cpf, email, password_hash, income::text, zip_code, street, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (first_name, last_name, cpf, email, password_hash, income, zip_code, street)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
RETURNING ` + customerColumns
	return r.scanCustomer(r.db.QueryRow(
		ctx,
		q,
		c.FirstName,
		c.LastName,
		c.CPF,
		c.Email,
		c.PasswordHash,
		c.Income.String(),
		c.Address.ZipCode,
		c.Address.Street,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
LIMIT 1
`
	return r.scanCustomer(r.db.QueryRow(ctx, q, id))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET first_name = $1, last_name = $2, income = $3::numeric, zip_code = $4, street = $5
WHERE id = $6
RETURNING ` + customerColumns
	return r.scanCustomer(r.db.QueryRow(
		ctx,
		q,
		c.FirstName,
		c.LastName,
		c.Income.String(),
		c.Address.ZipCode,
		c.Address.Street,
		c.ID,
	))
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("customer repo: delete id=%d err=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var income string
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.CPF,
		&c.Email,
		&c.PasswordHash,
		&income,
		&c.Address.ZipCode,
		&c.Address.Street,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(r.logger, err)
	}
	c.Income, err = decimal.NewFromString(income)
	if err != nil {
		r.logger.Printf("customer repo: decode income id=%d err=%v", c.ID, err)
		return nil, err
	}
	return &c, nil
}

// mapPgError translates low-level pgx failures into domain error kinds. The
// constraint name tells cpf conflicts apart from email conflicts.
func mapPgError(logger *log.Logger, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "customers_cpf_key":
			return domain.Conflictf("cpf already registered")
		case "customers_email_key":
			return domain.Conflictf("email already registered")
		}
		return domain.Conflictf("customer already exists")
	}
	logger.Printf("customer repo: query error=%v", err)
	return err
}
