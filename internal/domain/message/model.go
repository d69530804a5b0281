package message

import (
	"time"

	"github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// Channel is the delivery rail a message travels on.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Type is the concrete message kind within a channel.
type Type string

const (
	TypeSMS   Type = "sms"
	TypeMMS   Type = "mms"
	TypeEmail Type = "email"
)

// Direction marks which way a message flowed.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ValidTypeForChannel reports whether a message type may travel on the
// given channel: sms and mms ride the SMS rail, email rides the email rail.
func ValidTypeForChannel(channel Channel, msgType Type) bool {
	switch channel {
	case ChannelSMS:
		return msgType == TypeSMS || msgType == TypeMMS
	case ChannelEmail:
		return msgType == TypeEmail
	default:
		return false
	}
}

// Message is one directional communication instance. Rows are immutable
// once written; deletion only happens via cascading conversation deletion.
//
// (ProviderType, ProviderMessageID) is unique whenever ProviderMessageID is
// non-nil: that pair is the idempotency key for inbound webhook delivery.
type Message struct {
	ID                uint
	PublicID          string
	ConversationID    uint
	Channel           Channel
	Type              Type
	Direction         Direction
	ProviderType      string
	ProviderMessageID *string
	ProviderStatus    provider.Status // outcome recorded for outbound sends
	FromContactID     uint
	ToContactID       uint
	Body              string
	Attachments       []string
	SentAt            time.Time
	ReceivedAt        *time.Time
	CreatedAt         time.Time
}
