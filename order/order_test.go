package order

import (
	"encoding/json"
	"testing"
	"time"

	"pizzadash/geo"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusIncoming, "incoming"},
		{StatusActive, "active"},
		{StatusPast, "past"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestStatusTextRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusIncoming, StatusActive, StatusPast} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", s, err)
		}
		var back Status
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != s {
			t.Errorf("round trip %v -> %q -> %v", s, text, back)
		}
	}

	var s Status
	if err := s.UnmarshalText([]byte("cancelled")); err == nil {
		t.Error("UnmarshalText accepted unknown status")
	}
}

func TestOrderJSONRoundTrip(t *testing.T) {
	start := geo.Point{Lat: 52.51, Lon: 13.40}
	o := &Order{
		ID:               "order-1",
		CustomerName:     "Ada",
		CustomerAvatar:   "avatar_3",
		Items:            []Item{{Name: "Margherita", Quantity: 2}, {Name: "Calzone", Quantity: 1}},
		Total:            12,
		DeliveryFee:      7,
		Tip:              5,
		CreatedAt:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CustomerLocation: geo.Point{Lat: 52.52, Lon: 13.41},
		StartLocation:    &start,
		Distance:         1422.5,
		PizzaMade:        true,
		NearCustomer:     false,
		Status:           StatusActive,
	}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Order
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if back.ID != o.ID || back.Total != o.Total || back.Status != o.Status ||
		back.Distance != o.Distance || !back.PizzaMade || len(back.Items) != 2 {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.StartLocation == nil || *back.StartLocation != start {
		t.Errorf("start location lost: %v", back.StartLocation)
	}
}

func TestOrderJSONAbsentStartLocation(t *testing.T) {
	o := &Order{ID: "order-2", Status: StatusIncoming}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) == "" || string(data) == "{}" {
		t.Fatal("unexpected empty marshal")
	}
	// Absent optional stays absent, not null
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if _, present := raw["startLocation"]; present {
		t.Error("startLocation serialized despite being unset")
	}
}

func TestClone(t *testing.T) {
	start := geo.Point{Lat: 1, Lon: 2}
	o := &Order{
		ID:            "order-3",
		Items:         []Item{{Name: "Hawaii", Quantity: 1}},
		StartLocation: &start,
	}

	c := o.Clone()
	c.Items[0].Quantity = 9
	c.StartLocation.Lat = 50

	if o.Items[0].Quantity != 1 {
		t.Error("clone shares items slice")
	}
	if o.StartLocation.Lat != 1 {
		t.Error("clone shares start location")
	}
}
