package orders

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	var v struct {
		A *Date `json:"a"`
		B *Date `json:"b"`
		C Date  `json:"c"`
		D *Date `json:"d"`
	}
	in := `{"a":"2026-03-11","b":"2026-03-11T08:30:00","c":"2026-03-11T08:30:00Z","d":null}`
	if err := json.Unmarshal([]byte(in), &v); err != nil {
		t.Fatal(err)
	}
	for name, d := range map[string]*Date{"a": v.A, "b": v.B, "c": &v.C} {
		if d == nil || d.String() != "2026-03-11" {
			t.Errorf("%s = %v", name, d)
		}
	}
	if v.D != nil {
		t.Errorf("null should leave the pointer nil, got %v", v.D)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"next week"`), &bad); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestDateMarshal(t *testing.T) {
	d, err := ParseDate("2026-12-01")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(d)
	if string(b) != `"2026-12-01"` {
		t.Errorf("marshal = %s", b)
	}
}

func TestBeforeDay(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if BeforeDay(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), today) {
		t.Error("same calendar day is not before")
	}
	if !BeforeDay(time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), today) {
		t.Error("previous day is before")
	}
}
