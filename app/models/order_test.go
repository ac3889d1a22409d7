package models_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusPending, models.StatusProcessed, models.StatusShipped, models.StatusDelivered,
	} {
		if !models.ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	for _, s := range []string{"", "cancelled", "PENDING", "done"} {
		if models.ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusProcessed, true},
		{models.StatusProcessed, models.StatusShipped, true},
		{models.StatusShipped, models.StatusDelivered, true},

		// Skipping ahead is allowed.
		{models.StatusPending, models.StatusDelivered, true},
		{models.StatusProcessed, models.StatusDelivered, true},

		// Same status is an idempotent no-op.
		{models.StatusShipped, models.StatusShipped, true},

		// Backwards is never allowed.
		{models.StatusDelivered, models.StatusShipped, false},
		{models.StatusShipped, models.StatusPending, false},
		{models.StatusProcessed, models.StatusPending, false},

		// Unknown statuses on either side.
		{"cancelled", models.StatusPending, false},
		{models.StatusPending, "cancelled", false},
	}

	for _, c := range cases {
		if got := models.CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
