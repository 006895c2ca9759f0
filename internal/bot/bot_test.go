package bot

import (
	"testing"
)

func TestParseNewOrder(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantName     string
		wantPrice    float64
		wantQuantity int
		wantErr      bool
	}{
		{"name and price", "наушники;1500", "наушники", 1500, 1, false},
		{"with quantity", "кабель;99.90;3", "кабель", 99.90, 3, false},
		{"comma decimal", "чехол;250,50", "чехол", 250.50, 1, false},
		{"padded fields", " плеер ; 4200 ; 2 ", "плеер", 4200, 2, false},
		{"missing price", "наушники", "", 0, 0, true},
		{"empty name", ";1500", "", 0, 0, true},
		{"zero price", "наушники;0", "", 0, 0, true},
		{"negative price", "наушники;-5", "", 0, 0, true},
		{"bad quantity", "наушники;1500;две", "", 0, 0, true},
		{"zero quantity", "наушники;1500;0", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := ParseNewOrder(tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.payload)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tt.payload, err)
			}
			if order.ProductName != tt.wantName {
				t.Errorf("name = %q, want %q", order.ProductName, tt.wantName)
			}
			if order.Price != tt.wantPrice {
				t.Errorf("price = %v, want %v", order.Price, tt.wantPrice)
			}
			if order.Quantity != tt.wantQuantity {
				t.Errorf("quantity = %d, want %d", order.Quantity, tt.wantQuantity)
			}
			if !order.Consolidation {
				t.Error("consolidation should default to true")
			}
		})
	}
}
