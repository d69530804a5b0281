package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// LoopbackGateway accepts every send and fabricates a provider message id.
// It backs channels with no vendor endpoint configured, which is the
// development and test default.
type LoopbackGateway struct {
	channel string
}

// NewLoopbackGateway creates a loopback gateway for the given channel.
func NewLoopbackGateway(channel string) *LoopbackGateway {
	return &LoopbackGateway{channel: channel}
}

// Send reports success with a generated id.
func (g *LoopbackGateway) Send(_ context.Context, _ domain.OutboundMessage) (domain.Outcome, error) {
	return domain.Outcome{
		Status:            domain.StatusSuccess,
		ProviderMessageID: fmt.Sprintf("%s-%s", g.channel, uuid.NewString()),
	}, nil
}
