package provider

import (
	"context"
	"time"
)

// Status is the result taxonomy for one outbound send attempt.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusTemporaryFailure Status = "temporary_failure"
	StatusRateLimited      Status = "rate_limited"
	StatusPermanentFailure Status = "permanent_failure"
)

// IsSuccess reports whether the send was accepted by the vendor.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsRetryable reports whether a future backoff layer may retry the send.
// Scheduling those retries is a caller concern; the engine only records the
// outcome.
func (s Status) IsRetryable() bool {
	return s == StatusTemporaryFailure || s == StatusRateLimited
}

// Outcome is what a gateway reports back for one send attempt.
type Outcome struct {
	Status            Status
	ProviderMessageID string        // set on success
	RetryAfter        time.Duration // set on rate_limited
	Reason            string        // set on permanent_failure
}

// OutboundMessage is the channel-agnostic payload handed to a gateway.
type OutboundMessage struct {
	From        string
	To          string
	MessageType string
	Body        string
	Attachments []string
}

// Gateway is the channel-specific sender the ingestion engine depends on
// but does not implement. Adapters are interchangeable strategies sharing
// this one contract.
type Gateway interface {
	Send(ctx context.Context, msg OutboundMessage) (Outcome, error)
}
