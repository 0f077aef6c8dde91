// Package payments creates Mercado Pago checkout preferences for
// invoices. The provider is behind an interface so handlers can be
// exercised without hitting the real API.
package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/business-manager/internal/models"
)

type Checkout struct {
	ID        string
	InitPoint string
}

type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, inv *models.Invoice) (*Checkout, error)
}

type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, inv *models.Invoice) (*Checkout, error) {
	title := fmt.Sprintf("Fatura %s", inv.Number)
	if inv.Number == "" {
		title = fmt.Sprintf("Fatura %s", inv.ID)
	}

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:         inv.ID,
				Title:      title,
				Quantity:   1,
				UnitPrice:  inv.Total - inv.PaidAmount,
				CurrencyID: "BRL",
			},
		},
		ExternalReference: inv.ID,
	}

	resp, err := m.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}

	return &Checkout{
		ID:        resp.ID,
		InitPoint: resp.InitPoint,
	}, nil
}

var _ CheckoutProvider = (*MercadoPago)(nil)
