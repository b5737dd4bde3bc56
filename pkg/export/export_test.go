package export

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metagen/pkg/model"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	values := model.Values{"title": "T", "description": "D"}
	doc, err := Marshal(values)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	got, err := Unmarshal(doc)
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if diff := cmp.Diff(values, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalAtIsDeterministic(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	values := model.Values{"title": "T"}

	first, err := MarshalAt(values, at)
	if err != nil {
		t.Fatalf("MarshalAt returned error: %v", err)
	}
	second, err := MarshalAt(values, at)
	if err != nil {
		t.Fatalf("MarshalAt returned error: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("identical input must serialize identically")
	}
}

func TestUnmarshalRejectsMalformedDocuments(t *testing.T) {
	t.Parallel()

	cases := []string{
		`{}`,
		`{"version": "2.0.0", "timestamp": "x"}`,
		`{"data": [1, 2]}`,
		`garbage`,
	}
	for _, doc := range cases {
		if _, err := Unmarshal([]byte(doc)); err == nil {
			t.Fatalf("expected rejection for %s", doc)
		}
	}
}
