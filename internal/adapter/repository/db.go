package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/VS237/momshop/internal/infrastructure/database"
	"github.com/VS237/momshop/internal/store"
)

// PostgreSQL SQLSTATE codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// can run either on its own or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements store.Store on a pgx connection pool.
type PostgresStore struct {
	db *database.PostgresDB
}

var _ store.Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open database.
func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Repos() store.Repositories {
	return NewRepositories(s.db.Pool())
}

func (s *PostgresStore) WithinTransaction(ctx context.Context, fn store.TxFunc) error {
	return s.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// NewRepositories binds every repository to db.
func NewRepositories(db DBTX) store.Repositories {
	return store.Repositories{
		Products:   NewProductRepository(db),
		Categories: NewCategoryRepository(db),
		Suppliers:  NewSupplierRepository(db),
		Orders:     NewOrderRepository(db),
		Sales:      NewSaleRepository(db),
		Reports:    NewReportRepository(db),
		Users:      NewUserRepository(db),
		Customers:  NewCustomerRepository(db),
		Sellers:    NewSellerRepository(db),
		Expenses:   NewExpenseRepository(db),
		Chat:       NewChatRepository(db),
	}
}

// isUniqueViolation reports whether err is a unique constraint failure,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// nullable maps "" to SQL NULL for optional foreign keys.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
