package normalize_test

import (
	"testing"

	"github.com/varzeapro/varzeapro/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	if got := normalize.Email("  Joao.Silva@Example.COM "); got != "joao.silva@example.com" {
		t.Errorf("Email: got %q", got)
	}
}

func TestName(t *testing.T) {
	if got := normalize.Name("  Carlos Silva "); got != "Carlos Silva" {
		t.Errorf("Name: got %q", got)
	}
}

func TestStateCode(t *testing.T) {
	if got := normalize.StateCode(" sp "); got != "SP" {
		t.Errorf("StateCode: got %q", got)
	}
	// Length is not this package's concern.
	if got := normalize.StateCode("pernambuco"); got != "PERNAMBUCO" {
		t.Errorf("StateCode: got %q", got)
	}
}
