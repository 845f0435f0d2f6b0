package places

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAutocomplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Place/AutoComplete" {
			t.Errorf("path = %s, want /Place/AutoComplete", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("input") != "Le Loi" || q.Get("api_key") != "k" || q.Get("radius") != "50000" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"predictions":[{"description":"Le Loi, Q1","place_id":"p1",
			"structured_formatting":{"main_text":"Le Loi","secondary_text":"Q1"}}]}`)
	}))
	defer ts.Close()

	got := NewClient(ts.URL, "k", nil).Autocomplete(context.Background(), "Le Loi")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].PlaceID != "p1" || got[0].MainText != "Le Loi" || got[0].SecondaryText != "Q1" {
		t.Fatalf("unexpected suggestion: %+v", got[0])
	}
}

func TestGeocode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"geometry":{"location":{"lat":10.77,"lng":106.7}}}]}`)
	}))
	defer ts.Close()

	loc := NewClient(ts.URL, "k", nil).Geocode(context.Background(), "Ben Thanh")
	if loc == nil || loc.Lat != 10.77 || loc.Lng != 106.7 {
		t.Fatalf("unexpected location: %+v", loc)
	}
}

func TestFailuresAreEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", nil)
	if got := c.Autocomplete(context.Background(), "x"); got == nil || len(got) != 0 {
		t.Fatalf("Autocomplete = %v, want empty slice", got)
	}
	if loc := c.Geocode(context.Background(), "x"); loc != nil {
		t.Fatalf("Geocode = %v, want nil", loc)
	}
	if got := NewClient(ts.URL, "", nil).Autocomplete(context.Background(), "x"); len(got) != 0 {
		t.Fatalf("missing key must yield empty result")
	}
}
