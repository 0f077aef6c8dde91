package booking

import (
	"context"
	"log"

	"github.com/BruksfildServices01/business-manager/internal/audit"
	domain "github.com/BruksfildServices01/business-manager/internal/domain/booking"
	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/queue"
)

// ======================================================
// USE CASE
// ======================================================

// BookAppointment durably records a new appointment and updates the
// client's ledger (total_spent, last_service) in one atomic transaction.
// The two effects are never observed independently: no appointment
// without a ledger update, and vice versa.
//
// The operation performs no internal retry. A failed commit surfaces as
// ErrStoreUnavailable with zero partial writes, so the caller may retry
// the whole call from scratch.
type BookAppointment struct {
	store     domain.Store
	audit     *audit.Dispatcher
	reminders queue.Publisher
}

func NewBookAppointment(
	store domain.Store,
	audit *audit.Dispatcher,
	reminders queue.Publisher,
) *BookAppointment {
	return &BookAppointment{
		store:     store,
		audit:     audit,
		reminders: reminders,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in domain.Request,
) (string, error) {

	// --------------------------------------------------
	// 1. Validação do request
	// --------------------------------------------------
	if err := in.Validate(); err != nil {
		return "", err
	}

	var created models.Appointment

	// --------------------------------------------------
	// 2. Transação: ler cliente → criar agendamento → atualizar ledger
	// --------------------------------------------------
	err := uc.store.RunTransaction(ctx, func(ctx context.Context, tx domain.Tx) error {

		client, err := tx.GetClient(ctx, in.ClientID)
		if err != nil {
			return err
		}

		if client.OwnerID != in.OwnerID {
			return domain.ErrPermissionDenied
		}

		newTotal := client.TotalSpent + in.ServicePrice

		ap := models.Appointment{
			OwnerID:               in.OwnerID,
			ClientID:              client.ID,
			ClientName:            in.ClientName,
			ServiceID:             in.ServiceID,
			ServiceName:           in.ServiceName,
			ServicePrice:          in.ServicePrice,
			ServiceColorClassName: in.ServiceColorClassName,
			Date:                  in.Date,
			StartTime:             in.StartTime,
			EndTime:               in.EndTime,
			Description:           in.Description,
			WorkDone:              in.WorkDone,
			Address:               in.Address,
			Phone:                 in.Phone,
			SMSReminder:           in.SMSReminder,
		}

		if err := tx.CreateAppointment(ctx, &ap); err != nil {
			return err
		}

		if err := tx.UpdateClientLedger(ctx, client.ID, newTotal, in.LastService()); err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		return "", err
	}

	// --------------------------------------------------
	// 3. Pós-commit (best-effort, fora do contrato atômico)
	// --------------------------------------------------
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			OwnerID:  in.OwnerID,
			Action:   "appointment_booked",
			Entity:   "appointment",
			EntityID: created.ID,
			Metadata: map[string]any{
				"client_id":     created.ClientID,
				"service_name":  created.ServiceName,
				"service_price": created.ServicePrice,
				"date":          created.Date,
			},
		})
	}

	if in.SMSReminder && uc.reminders != nil {
		ev := queue.AppointmentReminderEvent{
			AppointmentID: created.ID,
			OwnerID:       created.OwnerID,
			ClientName:    created.ClientName,
			Phone:         created.Phone,
			ServiceName:   created.ServiceName,
			ServicePrice:  created.ServicePrice,
			Date:          created.Date,
			StartTime:     created.StartTime,
		}
		if err := uc.reminders.PublishReminder(ctx, ev); err != nil {
			log.Printf("reminder publish failed for appointment %s: %v", created.ID, err)
		}
	}

	return created.ID, nil
}
