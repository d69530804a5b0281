package provider

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	domain "github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// SMSGateway sends SMS and MMS traffic through an HTTP vendor API.
type SMSGateway struct {
	httpClient *resty.Client
	log        zerolog.Logger
}

// NewSMSGateway creates a Resty-backed SMS/MMS gateway.
func NewSMSGateway(baseURL string, timeout time.Duration, log zerolog.Logger) *SMSGateway {
	return &SMSGateway{
		httpClient: newClient(baseURL, timeout),
		log:        log.With().Str("component", "sms_gateway").Logger(),
	}
}

// Send posts the message to the vendor and maps the reply onto the outcome
// taxonomy.
func (g *SMSGateway) Send(ctx context.Context, msg domain.OutboundMessage) (domain.Outcome, error) {
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
		Post("/messages")

	outcome := classify(resp, &result, err)
	if !outcome.Status.IsSuccess() {
		g.log.Warn().
			Str("status", string(outcome.Status)).
			Str("reason", outcome.Reason).
			Msg("sms send not accepted")
	}
	return outcome, nil
}
