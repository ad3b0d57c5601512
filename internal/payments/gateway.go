// Package payments adapts the external payment gateway consumed for
// ad-hoc-tier bookings. The engine only sees three outcomes: charged,
// declined, or gateway unavailable.
package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"careconnect/pkg/client"
	"careconnect/pkg/logger"
)

// ErrDeclined reports that the gateway processed the charge and refused it.
// Any other non-nil error from Charge is an infrastructure failure.
var ErrDeclined = errors.New("charge declined")

type Gate interface {
	Charge(ctx context.Context, userID, activityID string) error
}

type chargeRequest struct {
	Reference  string `json:"reference"`
	UserID     string `json:"user_id"`
	ActivityID string `json:"activity_id"`
}

type chargeResponse struct {
	Status string `json:"status"`
}

type HTTPGate struct {
	client *client.HttpClient
	log    *logger.Logger
}

func NewHTTPGate(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPGate {
	return &HTTPGate{
		client: client.NewHttpClient(baseURL, timeout),
		log:    log,
	}
}

func (g *HTTPGate) Charge(ctx context.Context, userID, activityID string) error {
	reference := uuid.NewString()

	resp, err := g.client.POST(ctx, "/charges", chargeRequest{
		Reference:  reference,
		UserID:     userID,
		ActivityID: activityID,
	})
	if err != nil {
		return fmt.Errorf("payment gateway request failed: %w", err)
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		return ErrDeclined
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var body chargeResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return fmt.Errorf("payment gateway returned invalid response: %w", err)
	}

	switch body.Status {
	case "succeeded":
		g.log.Info("Charge succeeded",
			"reference", reference,
			"user_id", userID,
			"activity_id", activityID,
		)
		return nil
	case "declined":
		g.log.Info("Charge declined",
			"reference", reference,
			"user_id", userID,
			"activity_id", activityID,
		)
		return ErrDeclined
	default:
		return fmt.Errorf("payment gateway returned unknown charge status %q", body.Status)
	}
}

// DeclineAll is the gate used when no gateway is configured: ad-hoc members
// must complete payment out of band, so every in-band charge is declined.
type DeclineAll struct{}

func (DeclineAll) Charge(context.Context, string, string) error {
	return ErrDeclined
}
