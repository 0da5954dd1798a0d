package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"task-planner/pkg/response"
)

func TestDateMarshalJSON(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	tm := time.Date(2024, 5, 1, 23, 30, 0, 0, loc)

	b, err := json.Marshal(response.Date(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling Date: %v", err)
	}
	if string(b) != `"2024-05-01"` {
		t.Errorf("expected the date in its own location, got %s", b)
	}
}

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if string(b) != `"2024-05-01 15:30:00"` {
		t.Errorf("unexpected DateTime %s", b)
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	var d response.Date
	if err := json.Unmarshal([]byte(`"2024-05-01"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !time.Time(d).Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", time.Time(d))
	}
	if err := json.Unmarshal([]byte(`"05/01/2024"`), &d); err == nil {
		t.Errorf("expected an error for a non ISO date")
	}
}
