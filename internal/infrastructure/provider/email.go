package provider

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	domain "github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// EmailGateway sends email traffic through an HTTP vendor API.
type EmailGateway struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

// NewEmailGateway creates a Resty-backed email gateway.
func NewEmailGateway(baseURL string, timeout time.Duration, log zerolog.Logger) *EmailGateway {
	return &EmailGateway{
		httpClient: newClient(baseURL, timeout),
		log:        log.With().Str("component", "email_gateway").Logger(),
	}
}

// Send posts the message to the vendor and maps the reply onto the outcome
// taxonomy.
func (g *EmailGateway) Send(ctx context.Context, msg domain.OutboundMessage) (domain.Outcome, error) {
	var result sendResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(sendPayload{
			From:        msg.From,
			To:          msg.To,
			Type:        msg.MessageType,
			Body:        msg.Body,
			Attachments: msg.Attachments,
		}).
		SetResult(&result).
		Post("/emails")

	outcome := classify(resp, &result, err)
	if !outcome.Status.IsSuccess() {
		g.log.Warn().
			Str("status", string(outcome.Status)).
			Str("reason", outcome.Reason).
			Msg("email send not accepted")
	}
	return outcome, nil
}
