package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Connector opens a dedicated connection for every unit of work and closes it
// when the work is done. Nothing is pooled between calls.
type Connector struct {
	config *pgx.ConnConfig
}

// NewConnector parses a PostgreSQL connection string. A positive
// connectTimeout overrides the one in the string.
func NewConnector(connString string, connectTimeout time.Duration) (*Connector, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if connectTimeout > 0 {
		config.ConnectTimeout = connectTimeout
	}
	return &Connector{config: config}, nil
}

// WithConnection runs fn on a fresh connection.
func (c *Connector) WithConnection(ctx context.Context, fn func(ctx context.Context, conn *pgx.Conn) error) error {
	conn, err := pgx.ConnectConfig(ctx, c.config)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		// Close with a fresh context so a cancelled request still releases the socket.
		_ = conn.Close(context.Background())
	}()

	return fn(ctx, conn)
}

// WithReadOnlyTransaction runs fn inside a read-only transaction on a fresh
// connection. The transaction is rolled back if fn fails or panics.
func (c *Connector) WithReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return c.WithConnection(ctx, func(ctx context.Context, conn *pgx.Conn) error {
		tx, err := conn.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
		if err != nil {
			return fmt.Errorf("failed to begin read-only transaction: %w", err)
		}

		defer func() {
			if p := recover(); p != nil {
				_ = tx.Rollback(ctx)
				panic(p)
			}
		}()

		if err := fn(ctx, tx); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				return fmt.Errorf("tx failed: %v, rollback failed: %w", err, rbErr)
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}
