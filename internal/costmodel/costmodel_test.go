package costmodel

import (
	"testing"

	"github.com/atlantispak/packplan/internal/domain"
)

func extrusionOrder(id, material int, color string) domain.Order {
	return domain.Order{ID: id, ProcessFamily: domain.Extrusion, MaterialID: material, Color: color}
}

func ringingOrder(id int, caliber string) domain.Order {
	return domain.Order{ID: id, ProcessFamily: domain.Ringing, Caliber: caliber}
}

func corrugationOrder(id int, family domain.ProcessFamily, thickness *float64) domain.Order {
	return domain.Order{ID: id, ProcessFamily: family, ThicknessMM: thickness}
}

func f(v float64) *float64 { return &v }

func TestWasteCrossFamily(t *testing.T) {
	prev := extrusionOrder(1, 1, "red")
	next := ringingOrder(2, "D100")
	if w := Waste(prev, next); w != 0.15 {
		t.Errorf("cross-family waste = %f, want exactly 0.15", w)
	}
}

func TestWasteExtrusion(t *testing.T) {
	cases := []struct {
		name string
		prev domain.Order
		next domain.Order
		want float64
	}{
		{"same material same color", extrusionOrder(1, 1, "red"), extrusionOrder(2, 1, "red"), 0.02},
		{"same material other color", extrusionOrder(1, 1, "red"), extrusionOrder(2, 1, "blue"), 0.05},
		{"other material same color", extrusionOrder(1, 1, "red"), extrusionOrder(2, 2, "red"), 0.08},
		{"other material other color", extrusionOrder(1, 1, "red"), extrusionOrder(2, 2, "blue"), 0.12},
	}
	for _, c := range cases {
		if w := Waste(c.prev, c.next); w != c.want {
			t.Errorf("%s: waste = %f, want %f", c.name, w, c.want)
		}
	}
}

func TestWasteRinging(t *testing.T) {
	cases := []struct {
		name string
		prev string
		next string
		want float64
	}{
		{"equal calibers", "D140", "D140", 0.015},
		{"delta 40 within 50", "D100", "D140", 0.03},
		{"delta 160 beyond 50", "D140", "D300", 0.06},
		{"delta exactly 50", "D100", "D150", 0.03},
		{"missing previous", "", "D140", 0.05},
		{"unparseable next", "D100", "140", 0.05},
	}
	for _, c := range cases {
		if w := Waste(ringingOrder(1, c.prev), ringingOrder(2, c.next)); w != c.want {
			t.Errorf("%s: waste = %f, want %f", c.name, w, c.want)
		}
	}
}

func TestWasteCorrugation(t *testing.T) {
	cases := []struct {
		name   string
		family domain.ProcessFamily
		prev   *float64
		next   *float64
		want   float64
	}{
		{"soft equal", domain.CorrugationSoft, f(1.0), f(1.0), 0.025},
		{"soft near", domain.CorrugationSoft, f(1.0), f(1.5), 0.04},
		{"soft far", domain.CorrugationSoft, f(1.0), f(2.0), 0.07},
		{"soft missing", domain.CorrugationSoft, nil, f(1.0), 0.05},
		{"hard equal", domain.CorrugationHard, f(1.0), f(1.0), 0.03},
		{"hard near", domain.CorrugationHard, f(1.0), f(1.5), 0.05},
		{"hard far", domain.CorrugationHard, f(1.0), f(2.0), 0.08},
		{"hard missing", domain.CorrugationHard, f(1.0), nil, 0.05},
	}
	for _, c := range cases {
		prev := corrugationOrder(1, c.family, c.prev)
		next := corrugationOrder(2, c.family, c.next)
		if w := Waste(prev, next); w != c.want {
			t.Errorf("%s: waste = %f, want %f", c.name, w, c.want)
		}
	}
}

// Identical attributes on the same family always land in the
// "same-everything" bracket.
func TestWasteIdenticalOrders(t *testing.T) {
	cases := []struct {
		name  string
		order domain.Order
		want  float64
	}{
		{"extrusion", extrusionOrder(1, 3, "green"), 0.02},
		{"ringing", ringingOrder(1, "D200"), 0.015},
		{"soft corrugation", corrugationOrder(1, domain.CorrugationSoft, f(1.2)), 0.025},
		{"hard corrugation", corrugationOrder(1, domain.CorrugationHard, f(2.4)), 0.03},
	}
	for _, c := range cases {
		if w := Waste(c.order, c.order); w != c.want {
			t.Errorf("%s: self-transition waste = %f, want %f", c.name, w, c.want)
		}
	}
}

func TestSetupMinutes(t *testing.T) {
	base := 30
	machine := domain.Machine{ID: 1, ProcessFamily: domain.Extrusion, BaseSetupMinutes: &base}

	// First job on the machine: exactly the base.
	first := extrusionOrder(1, 1, "red")
	if s := SetupMinutes(first, machine, nil); s != 30 {
		t.Errorf("first-job setup = %d, want 30", s)
	}

	// Default base when never set.
	if s := SetupMinutes(first, domain.Machine{ID: 2, ProcessFamily: domain.Extrusion}, nil); s != 30 {
		t.Errorf("defaulted setup = %d, want 30", s)
	}

	// Cross-family: twice the base.
	ringer := ringingOrder(2, "D100")
	if s := SetupMinutes(ringer, machine, &first); s != 60 {
		t.Errorf("cross-family setup = %d, want 60", s)
	}

	// Same family: base + floor(base * waste).
	// waste(same material, other color) = 0.05 -> 30 + floor(1.5) = 31.
	next := extrusionOrder(3, 1, "blue")
	if s := SetupMinutes(next, machine, &first); s != 31 {
		t.Errorf("same-family setup = %d, want 31", s)
	}
}

// The ringing caliber ladder from the delivery floor: base setup 20,
// D100 -> D140 stays at 20 (floor(20*0.03) = 0) while D140 -> D300
// climbs to 21 (floor(20*0.06) = 1).
func TestSetupMinutesRingingLadder(t *testing.T) {
	base := 20
	ringer := domain.Machine{ID: 1, ProcessFamily: domain.Ringing, BaseSetupMinutes: &base}

	d100 := ringingOrder(1, "D100")
	d140 := ringingOrder(2, "D140")
	d300 := ringingOrder(3, "D300")

	if s := SetupMinutes(d140, ringer, &d100); s != 20 {
		t.Errorf("D100->D140 setup = %d, want 20", s)
	}
	if s := SetupMinutes(d300, ringer, &d140); s != 21 {
		t.Errorf("D140->D300 setup = %d, want 21", s)
	}
}
