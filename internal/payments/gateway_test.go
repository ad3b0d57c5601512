package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"careconnect/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func gateFor(t *testing.T, handler http.HandlerFunc) *HTTPGate {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGate(srv.URL, 2*time.Second, testLogger())
}

func TestCharge_Succeeded(t *testing.T) {
	gate := gateFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/charges" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"succeeded"}`))
	})

	if err := gate.Charge(context.Background(), "user1", "act1"); err != nil {
		t.Errorf("Charge() = %v, want nil", err)
	}
}

func TestCharge_Declined(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "declined status in body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":"declined"}`))
			},
		},
		{
			name: "402 response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusPaymentRequired)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := gateFor(t, tt.handler)
			err := gate.Charge(context.Background(), "user1", "act1")
			if !errors.Is(err, ErrDeclined) {
				t.Errorf("Charge() = %v, want ErrDeclined", err)
			}
		})
	}
}

func TestCharge_GatewayFailureIsNotDeclined(t *testing.T) {
	gate := gateFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := gate.Charge(context.Background(), "user1", "act1")
	if err == nil {
		t.Fatal("Charge() = nil, want error")
	}
	if errors.Is(err, ErrDeclined) {
		t.Error("gateway failure must not be reported as a decline")
	}
}

func TestDeclineAll(t *testing.T) {
	if err := (DeclineAll{}).Charge(context.Background(), "u", "a"); !errors.Is(err, ErrDeclined) {
		t.Errorf("DeclineAll.Charge() = %v, want ErrDeclined", err)
	}
}
