package credit

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

const creditColumns = `id, credit_code::text, credit_value::text, day_first_installment, number_of_installments, status, customer_id, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Credit) (*domain.Credit, error) {
	const q = `
INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id)
VALUES ($1::uuid, $2::numeric, $3, $4, $5, $6)
RETURNING ` + creditColumns
	return r.scanCredit(r.db.QueryRow(
		ctx,
		q,
		c.CreditCode,
		c.CreditValue.String(),
		c.DayFirstInstallment,
		c.NumberOfInstallments,
		string(c.Status),
		c.CustomerID,
	))
}

func (r *postgresRepo) GetByCode(ctx context.Context, creditCode string) (*domain.Credit, error) {
	const q = `
SELECT ` + creditColumns + `
FROM credits
WHERE credit_code = $1::uuid
LIMIT 1
`
	return r.scanCredit(r.db.QueryRow(ctx, q, creditCode))
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Credit, error) {
	const q = `
SELECT ` + creditColumns + `
FROM credits
WHERE customer_id = $1
ORDER BY id
`
	rows, err := r.db.Query(ctx, q, customerID)
	if err != nil {
		r.logger.Printf("credit repo: list customer_id=%d err=%v", customerID, err)
		return nil, err
	}
	defer rows.Close()

	credits := make([]domain.Credit, 0)
	for rows.Next() {
		c, err := r.scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, *c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("credit repo: list customer_id=%d rows err=%v", customerID, err)
		return nil, err
	}
	return credits, nil
}

func (r *postgresRepo) scanCredit(row pgx.Row) (*domain.Credit, error) {
	var c domain.Credit
	var value, status string
	err := row.Scan(
		&c.ID,
		&c.CreditCode,
		&value,
		&c.DayFirstInstallment,
		&c.NumberOfInstallments,
		&status,
		&c.CustomerID,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.Conflictf("credit code already issued")
		}
		r.logger.Printf("credit repo: query error=%v", err)
		return nil, err
	}
	c.Status = domain.Status(status)
	c.CreditValue, err = decimal.NewFromString(value)
	if err != nil {
		r.logger.Printf("credit repo: decode credit value id=%d err=%v", c.ID, err)
		return nil, err
	}
	return &c, nil
}
