package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// WithinTx runs fn inside a single transaction. The transaction is carried
// through the context, so every repository call inside fn shares it. Any
// error from fn rolls the whole scope back; only a clean return commits.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.runTx(ctx, nil, fn)
}

// WithinReadTx runs fn inside a read-only transaction.
func (db *DB) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.runTx(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (db *DB) runTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := db.conn.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("failed to roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
