package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchFunds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/funds/live/ml/funds" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"funds":[
			{"scheme_code":119598,"scheme_name":"Parag Parikh Flexi Cap Fund","category":"Flexi Cap","nav":78.5,"return_3y":18.2},
			{"scheme_code":120503,"scheme_name":"Quant Flexi Cap Fund","category":"Flexi Cap","nav":95.1}
		]}`))
	}))
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.URL))
	funds, err := client.FetchFunds(context.Background())
	if err != nil {
		t.Fatalf("FetchFunds: %v", err)
	}
	if len(funds) != 2 {
		t.Fatalf("got %d funds, want 2", len(funds))
	}
	if funds[0].SchemeCode != 119598 || funds[0].NAV != 78.5 {
		t.Errorf("funds[0] = %+v", funds[0])
	}
	if funds[0].Return3Y == nil || *funds[0].Return3Y != 18.2 {
		t.Errorf("funds[0].Return3Y = %v", funds[0].Return3Y)
	}
	if funds[1].Return3Y != nil {
		t.Errorf("funds[1].Return3Y = %v, want nil", funds[1].Return3Y)
	}
	if funds[0].LastUpdated.IsZero() {
		t.Error("LastUpdated not defaulted for funds missing a timestamp")
	}
}

func TestFetchFundsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.URL))
	_, err := client.FetchFunds(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.StatusCode)
	}
}

func TestFetchFundsBadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client := NewClient(WithBaseURL(ts.URL))
	if _, err := client.FetchFunds(context.Background()); err == nil {
		t.Error("error = nil, want decode failure")
	}
}

func TestFetchFundsContextCancelled(t *testing.T) {
	client := NewClient(WithBaseURL("http://localhost:0"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.FetchFunds(ctx); err == nil {
		t.Error("error = nil, want context cancellation")
	}
}
