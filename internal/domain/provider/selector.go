package provider

import (
	"context"

	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Selector is the provider-lookup capability handed to callers at
// construction time. It replaces a process-wide registry: whoever wires the
// application decides which gateway serves which channel.
type Selector struct {
	byChannel map[string]Gateway
}

// NewSelector builds a selector over a channel-to-gateway mapping.
func NewSelector(byChannel map[string]Gateway) *Selector {
	gateways := make(map[string]Gateway, len(byChannel))
	for channel, gw := range byChannel {
		gateways[channel] = gw
	}
	return &Selector{byChannel: gateways}
}

// ForChannel returns the gateway serving the given channel.
func (s *Selector) ForChannel(ctx context.Context, channel string) (Gateway, error) {
	gw, ok := s.byChannel[channel]
	if !ok {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"no provider configured for channel: "+channel,
			nil,
			"provider-selector-unknown-channel",
		)
	}
	return gw, nil
}
