package order

import "testing"

func TestTotalSumsLineItems(t *testing.T) {
	items := []Item{
		{ProductID: 1, Quantity: 2, ProductPrice: 10},
		{ProductID: 2, Quantity: 3, ProductPrice: 1.5},
	}
	if got := Total(items); got != 24.5 {
		t.Fatalf("Total = %v, want 24.5", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %v, want 0", got)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !s.IsValid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("REFUNDED").IsValid() {
		t.Fatal("unknown status reported valid")
	}
}

func TestSeedTotalIsDerived(t *testing.T) {
	seed := Seed()
	if len(seed) != 1 {
		t.Fatalf("expected one seed order, got %d", len(seed))
	}
	o := seed[0]
	if o.TotalAmount != Total(o.Products) {
		t.Fatalf("seed total %v not derived from items", o.TotalAmount)
	}
	if o.Status != StatusPending {
		t.Fatalf("seed status = %s", o.Status)
	}
}
