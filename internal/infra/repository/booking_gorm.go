package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/business-manager/internal/domain/booking"
	"github.com/BruksfildServices01/business-manager/internal/models"
)

// BookingGormStore implements the booking store contract on Postgres.
// Serialization relies on the database: the client row is locked FOR
// UPDATE inside the transaction, so two concurrent bookings against the
// same client queue up instead of losing an update.
type BookingGormStore struct {
	db *gorm.DB
}

func NewBookingGormStore(db *gorm.DB) *BookingGormStore {
	return &BookingGormStore{db: db}
}

func (s *BookingGormStore) RunTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.Tx) error,
) error {

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormTx{tx: tx})
	})

	if err != nil && isTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}

// --------------------------------------------------
// Tx handle
// --------------------------------------------------

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	err := t.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", clientID).
		First(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (t *gormTx) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return t.tx.WithContext(ctx).Create(ap).Error
}

func (t *gormTx) UpdateClientLedger(
	ctx context.Context,
	clientID string,
	totalSpent float64,
	lastService string,
) error {
	return t.tx.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"total_spent":  totalSpent,
			"last_service": lastService,
		}).Error
}

// --------------------------------------------------
// Error classification
// --------------------------------------------------

// isTransient reports whether a failed transaction is worth retrying from
// scratch: serialization failures, deadlocks and connection-class errors.
// Postgres rolls the whole transaction back in all of these cases.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return true
		}
		return strings.HasPrefix(pgErr.Code, "08") // connection exceptions
	}
	return false
}

var _ domain.Store = (*BookingGormStore)(nil)
