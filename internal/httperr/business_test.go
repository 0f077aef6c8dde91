package httperr

import (
	"fmt"
	"testing"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("client_not_found")

	if !IsBusiness(err, "client_not_found") {
		t.Fatal("expected code match")
	}
	if IsBusiness(err, "other_code") {
		t.Fatal("unexpected code match")
	}
	if IsBusiness(fmt.Errorf("plain"), "client_not_found") {
		t.Fatal("plain error must not match")
	}
}

func TestIsBusinessUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("use case failed: %w", ErrBusiness("quote_not_found"))
	if !IsBusiness(wrapped, "quote_not_found") {
		t.Fatal("expected wrapped code match")
	}
}
