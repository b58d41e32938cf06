package resource

import "testing"

func TestStatus(t *testing.T) {
	s := Status(StateDisabled)
	if s["State"] != StateDisabled {
		t.Errorf("State = %v, want Disabled", s["State"])
	}
	if s["Health"] != HealthOK {
		t.Errorf("Health = %v, want OK", s["Health"])
	}
}

func TestNew(t *testing.T) {
	r := New("/redfish/v1/Thing/1", "#Thing.v1_0_0.Thing", "1", "Thing 1")

	if r["@odata.id"] != "/redfish/v1/Thing/1" {
		t.Errorf("@odata.id = %v", r["@odata.id"])
	}
	if r["Id"] != "1" {
		t.Errorf("Id = %v, want 1", r["Id"])
	}

	status, ok := r["Status"].(map[string]any)
	if !ok {
		t.Fatal("Status is not a map")
	}
	if status["State"] != StateEnabled {
		t.Errorf("Status.State = %v, want Enabled", status["State"])
	}
}

func TestCollection(t *testing.T) {
	ids := []string{"/a/1", "/a/2", "/a/3"}
	c := Collection("/a", "#Collection.Collection", "Things", ids)

	if c["Members@odata.count"] != 3 {
		t.Errorf("Members@odata.count = %v, want 3", c["Members@odata.count"])
	}

	members, ok := c["Members"].([]map[string]any)
	if !ok {
		t.Fatal("Members is not a slice of maps")
	}
	for i, m := range members {
		if m["@odata.id"] != ids[i] {
			t.Errorf("member %d = %v, want %v", i, m["@odata.id"], ids[i])
		}
	}
}

func TestCollection_Empty(t *testing.T) {
	c := Collection("/a", "#Collection.Collection", "Things", nil)

	if c["Members@odata.count"] != 0 {
		t.Errorf("Members@odata.count = %v, want 0", c["Members@odata.count"])
	}

	members, ok := c["Members"].([]map[string]any)
	if !ok || members == nil {
		t.Fatal("Members must be an empty slice, not nil")
	}
}

func TestSensor_RoundsReading(t *testing.T) {
	s := Sensor("/s/PowerOUTLET1", "PowerOUTLET1", "Outlet 1 Power", "Power", "W", "PowerOutlet", 139.123456)

	if s["Reading"] != 139.1235 {
		t.Errorf("Reading = %v, want 139.1235", s["Reading"])
	}
	if s["ReadingType"] != "Power" {
		t.Errorf("ReadingType = %v, want Power", s["ReadingType"])
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{value: 1.23456, places: 4, want: 1.2346},
		{value: 1.23454, places: 4, want: 1.2345},
		{value: 229.999999, places: 2, want: 230.0},
		{value: 0, places: 4, want: 0},
	}

	for _, tt := range tests {
		if got := Round(tt.value, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
		}
	}
}
