package models_test

import (
	"testing"

	"github.com/ordena/ordena/app/models"
)

func TestAddOrMergeCombinesLines(t *testing.T) {
	var cart models.Cart

	cart.AddOrMerge(1, "Espresso beans 1kg", 18.50, 2)
	cart.AddOrMerge(2, "Ceramic dripper", 22.00, 1)
	cart.AddOrMerge(1, "Espresso beans 1kg", 18.50, 3)

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddOrMergeCoercesQuantity(t *testing.T) {
	var cart models.Cart

	cart.AddOrMerge(1, "Filter paper pack", 4.25, 0)
	cart.AddOrMerge(2, "Cold brew bottle", 29.90, -3)

	for _, line := range cart.Lines {
		if line.Quantity != 1 {
			t.Errorf("product %d: expected quantity 1, got %d", line.ProductID, line.Quantity)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	var cart models.Cart
	cart.AddOrMerge(1, "Espresso beans 1kg", 18.50, 2)

	if !cart.SetQuantity(1, 4) {
		t.Fatal("expected SetQuantity to find the line")
	}
	if cart.Lines[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", cart.Lines[0].Quantity)
	}

	if cart.SetQuantity(99, 1) {
		t.Error("expected false for unknown product")
	}

	// Quantity below 1 removes the line.
	if !cart.SetQuantity(1, 0) {
		t.Fatal("expected SetQuantity to find the line")
	}
	if !cart.Empty() {
		t.Error("expected cart to be empty after removal")
	}
}

func TestRemove(t *testing.T) {
	var cart models.Cart
	cart.AddOrMerge(1, "Decaf blend 500g", 12.00, 1)

	if !cart.Remove(1) {
		t.Fatal("expected Remove to find the line")
	}
	if cart.Remove(1) {
		t.Error("expected false for already-removed product")
	}
}

func TestSubtotalUsesSnapshots(t *testing.T) {
	var cart models.Cart
	cart.AddOrMerge(1, "Espresso beans 1kg", 18.50, 2)
	cart.AddOrMerge(2, "Filter paper pack", 4.25, 4)

	want := 18.50*2 + 4.25*4
	if got := cart.Subtotal(); got != want {
		t.Errorf("expected subtotal %.2f, got %.2f", want, got)
	}
}
