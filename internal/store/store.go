// Package store persists invoice snapshots.
//
// The store is the only place that assigns invoice ids and timestamps.
// Snapshots go in and come out by value; callers never share state with
// the database rows.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

var (
	// ErrNotFound is returned when no invoice has the requested id.
	ErrNotFound = errors.New("invoice not found")

	// ErrMissingID is returned when Update is called without an id.
	ErrMissingID = errors.New("invoice id is required")
)

// Store is the persistence collaborator of the invoice model.
type Store interface {
	// Create stores a new invoice, assigning ID (when empty), CreatedAt and UpdatedAt.
	Create(ctx context.Context, inv models.Invoice) (models.Invoice, error)

	// Update replaces the stored invoice with the same ID. CreatedAt is kept, UpdatedAt is bumped.
	Update(ctx context.Context, inv models.Invoice) (models.Invoice, error)

	// Get loads one invoice with its items in display order.
	Get(ctx context.Context, id string) (models.Invoice, error)

	// List returns every invoice, most recently updated first.
	List(ctx context.Context) ([]models.Invoice, error)

	// Delete removes an invoice and its items.
	Delete(ctx context.Context, id string) error

	Close() error
}

type invoiceRecord struct {
	ID             string `gorm:"primaryKey"`
	InvoiceNumber  string `gorm:"index"`
	Subject        string
	Date           string
	DueDate        string
	CompanyName    string
	CompanyAddress string
	ClientName     string
	ClientAddress  string
	TaxRate        decimal.Decimal `gorm:"type:text"`
	Notes          string
	CreatedAt      time.Time        `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime:false;index"`
	Items          []lineItemRecord `gorm:"foreignKey:InvoiceID"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// Item ids are unique within their invoice only.
type lineItemRecord struct {
	InvoiceID   string `gorm:"primaryKey"`
	ID          string `gorm:"primaryKey"`
	Position    int
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:text"`
}

func (lineItemRecord) TableName() string { return "line_items" }

// SQLStore implements Store on any gorm dialect; Open uses SQLite.
type SQLStore struct {
	db  *gorm.DB
	ids invoice.IDGenerator
	now func() time.Time
	log zerolog.Logger
}

// Option customizes an SQLStore.
type Option func(*SQLStore)

// WithIDGenerator sets the generator used for new invoice ids.
func WithIDGenerator(ids invoice.IDGenerator) Option {
	return func(s *SQLStore) { s.ids = ids }
}

// WithClock sets the time source for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *SQLStore) { s.now = now }
}

// Open opens (and migrates) the SQLite database at dsn, a file path or any
// DSN the pure-Go SQLite driver accepts.
func Open(dsn string, opts ...Option) (*SQLStore, error) {
	const op = "Open"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database %s: %w", op, dsn, err)
	}
	return New(db, opts...)
}

// New wraps an existing gorm connection and migrates the schema.
func New(db *gorm.DB, opts ...Option) (*SQLStore, error) {
	const op = "New"

	s := &SQLStore{
		db:  db,
		ids: invoice.UUIDGenerator{},
		now: time.Now,
		log: logger.WithComponent("store"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := db.AutoMigrate(&invoiceRecord{}, &lineItemRecord{}); err != nil {
		return nil, fmt.Errorf("%s: schema migration failed: %w", op, err)
	}
	return s, nil
}

func (s *SQLStore) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	const op = "Create"

	out := inv.Clone()
	if out.ID == "" {
		out.ID = s.ids.NewID()
	}
	now := s.now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now

	rec := toRecord(out)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("%s: failed to insert invoice: %w", op, err)
	}

	s.log.Info().
		Str("invoice_id", out.ID).
		Str("invoice_number", out.InvoiceNumber).
		Int("items", len(out.Items)).
		Msg("Invoice created")

	return out, nil
}

func (s *SQLStore) Update(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	const op = "Update"

	if inv.ID == "" {
		return models.Invoice{}, fmt.Errorf("%s: %w", op, ErrMissingID)
	}

	var out models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing invoiceRecord
		if err := tx.Select("id", "created_at").First(&existing, "id = ?", inv.ID).Error; err != nil {
			return notFound(err)
		}

		out = inv.Clone()
		out.CreatedAt = existing.CreatedAt
		out.UpdatedAt = s.now().UTC()

		rec := toRecord(out)
		if err := tx.Where("invoice_id = ?", out.ID).Delete(&lineItemRecord{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&rec).Error
	})
	if err != nil {
		return models.Invoice{}, fmt.Errorf("%s: failed to update invoice %s: %w", op, inv.ID, err)
	}

	s.log.Info().
		Str("invoice_id", out.ID).
		Int("items", len(out.Items)).
		Msg("Invoice updated")

	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (models.Invoice, error) {
	const op = "Get"

	var rec invoiceRecord
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return models.Invoice{}, fmt.Errorf("%s: %s: %w", op, id, notFound(err))
	}
	return fromRecord(rec), nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.Invoice, error) {
	const op = "List"

	var recs []invoiceRecord
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("updated_at DESC").Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list invoices: %w", op, err)
	}

	out := make([]models.Invoice, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromRecord(rec))
	}
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	const op = "Delete"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&lineItemRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&invoiceRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, id, err)
	}

	s.log.Info().Str("invoice_id", id).Msg("Invoice deleted")
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func toRecord(inv models.Invoice) invoiceRecord {
	rec := invoiceRecord{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		Subject:        inv.Subject,
		Date:           inv.Date,
		DueDate:        inv.DueDate,
		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		ClientName:     inv.ClientName,
		ClientAddress:  inv.ClientAddress,
		TaxRate:        inv.TaxRate,
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		Items:          make([]lineItemRecord, 0, len(inv.Items)),
	}
	for i, item := range inv.Items {
		rec.Items = append(rec.Items, lineItemRecord{
			ID:          item.ID,
			InvoiceID:   inv.ID,
			Position:    i,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return rec
}

func fromRecord(rec invoiceRecord) models.Invoice {
	inv := models.Invoice{
		ID:             rec.ID,
		InvoiceNumber:  rec.InvoiceNumber,
		Subject:        rec.Subject,
		Date:           rec.Date,
		DueDate:        rec.DueDate,
		CompanyName:    rec.CompanyName,
		CompanyAddress: rec.CompanyAddress,
		ClientName:     rec.ClientName,
		ClientAddress:  rec.ClientAddress,
		TaxRate:        rec.TaxRate,
		Notes:          rec.Notes,
		CreatedAt:      rec.CreatedAt.UTC(),
		UpdatedAt:      rec.UpdatedAt.UTC(),
		Items:          make([]models.LineItem, 0, len(rec.Items)),
	}
	for _, item := range rec.Items {
		inv.Items = append(inv.Items, models.LineItem{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inv
}
