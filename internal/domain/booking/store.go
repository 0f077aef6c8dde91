package booking

import (
	"context"

	"github.com/BruksfildServices01/business-manager/internal/models"
)

// Tx is the set of document operations valid inside one transaction.
type Tx interface {
	// GetClient reads the client document. Returns ErrClientNotFound
	// when no document exists at that id.
	GetClient(ctx context.Context, clientID string) (*models.Client, error)

	// CreateAppointment writes a new appointment document. The store
	// assigns the id and fills ap.ID before returning.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// UpdateClientLedger overwrites the two ledger fields of one client.
	UpdateClientLedger(ctx context.Context, clientID string, totalSpent float64, lastService string) error
}

// Store runs a unit of work atomically: either every write inside fn is
// committed or none is. A commit lost to a concurrent conflicting write
// surfaces as ErrStoreUnavailable with zero side effects from the attempt.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
