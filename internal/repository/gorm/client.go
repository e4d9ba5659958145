package gorm

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roomledger/roomledger/internal/config"
	ierr "github.com/roomledger/roomledger/internal/errors"
	"github.com/roomledger/roomledger/internal/logger"
	"github.com/roomledger/roomledger/internal/types"
)

// Client wraps the gorm DB handle shared by all repositories.
type Client struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewClient opens the Postgres connection and optionally migrates the schema.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to Postgres").
			Mark(ierr.ErrDatabase)
	}

	client := &Client{db: db, log: log}

	if cfg.Postgres.AutoMigrate {
		if err := client.Migrate(); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// Migrate creates or updates the schema for all tables.
func (c *Client) Migrate() error {
	err := c.db.AutoMigrate(
		&roomRow{},
		&readingRow{},
		&billRow{},
		&residentRow{},
		&maintenanceRow{},
		&productRow{},
		&saleRow{},
		&userRow{},
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to migrate database schema").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// scoped returns a query handle restricted to the tenant on the context.
// Soft-deleted rows are excluded everywhere.
func (c *Client) scoped(ctx context.Context) *gorm.DB {
	return c.handle(ctx).
		Where("tenant_id = ?", types.GetTenantID(ctx)).
		Where("status <> ?", types.StatusDeleted)
}

// txKey carries an open transaction on the context.
type txKey struct{}

// WithTx runs fn inside a single database transaction. Repository calls made
// with the context passed to fn join the transaction and roll back together
// when fn returns an error.
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// handle returns the transaction bound to the context, or the shared handle.
func (c *Client) handle(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return c.db.WithContext(ctx)
}
