package booking

import (
	"errors"
	"math"
	"testing"
)

func validRequest() Request {
	return Request{
		ClientID:     "client-1",
		OwnerID:      "owner-1",
		ServiceName:  "Corte Masculino",
		ServicePrice: 40,
		Date:         "2026-03-10",
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Request)
		wantErr bool
	}{
		{"valid", func(r *Request) {}, false},
		{"zero price is valid", func(r *Request) { r.ServicePrice = 0 }, false},
		{"missing client id", func(r *Request) { r.ClientID = "" }, true},
		{"missing owner id", func(r *Request) { r.OwnerID = "" }, true},
		{"empty date", func(r *Request) { r.Date = "" }, true},
		{"wrong date layout", func(r *Request) { r.Date = "10-03-2026" }, true},
		{"date with time part", func(r *Request) { r.Date = "2026-03-10T14:00" }, true},
		{"negative price", func(r *Request) { r.ServicePrice = -0.01 }, true},
		{"nan price", func(r *Request) { r.ServicePrice = math.NaN() }, true},
		{"inf price", func(r *Request) { r.ServicePrice = math.Inf(1) }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLastService(t *testing.T) {
	r := validRequest()
	if got, want := r.LastService(), "Corte Masculino - 2026-03-10"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
