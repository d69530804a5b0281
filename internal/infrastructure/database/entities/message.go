package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/yama-bushi/messaging-service/internal/domain/message"
	"github.com/yama-bushi/messaging-service/internal/domain/provider"
)

// Message stores one directional communication instance.
//
// The idempotency key (provider_type, provider_message_id) is enforced by a
// partial unique index created in migrate.go. Partial, so providers that
// never assign delivery ids do not collide with each other.
type Message struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	PublicID       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	ConversationID uint   `gorm:"index:idx_messages_conversation_sent_at,priority:1;not null"`

	Channel     message.Channel   `gorm:"type:varchar(10);not null"`
	MessageType message.Type      `gorm:"type:varchar(10);not null"`
	Direction   message.Direction `gorm:"type:varchar(10);not null"`

	ProviderType      string  `gorm:"type:varchar(32)"`
	ProviderMessageID *string `gorm:"type:varchar(255)"`
	ProviderStatus    string  `gorm:"type:varchar(20)"`

	FromContactID uint `gorm:"index;not null"`
	ToContactID   uint `gorm:"index;not null"`

	Body        string         `gorm:"type:text"`
	Attachments datatypes.JSON `gorm:"type:jsonb"`

	SentAt     time.Time `gorm:"index:idx_messages_conversation_sent_at,priority:2;not null"`
	ReceivedAt *time.Time
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// EtoD converts database entity to domain model
func (m *Message) EtoD() *message.Message {
	var attachments []string
	if len(m.Attachments) > 0 {
		_ = json.Unmarshal(m.Attachments, &attachments)
	}

	return &message.Message{
		ID:                m.ID,
		PublicID:          m.PublicID,
		ConversationID:    m.ConversationID,
		Channel:           m.Channel,
		Type:              m.MessageType,
		Direction:         m.Direction,
		ProviderType:      m.ProviderType,
		ProviderMessageID: m.ProviderMessageID,
		ProviderStatus:    provider.Status(m.ProviderStatus),
		FromContactID:     m.FromContactID,
		ToContactID:       m.ToContactID,
		Body:              m.Body,
		Attachments:       attachments,
		SentAt:            m.SentAt,
		ReceivedAt:        m.ReceivedAt,
		CreatedAt:         m.CreatedAt,
	}
}

// NewSchemaMessage creates a database entity from domain model
func NewSchemaMessage(m *message.Message) (*Message, error) {
	attachments, err := marshalJSON(m.Attachments)
	if err != nil {
		return nil, err
	}

	return &Message{
		ID:                m.ID,
		PublicID:          m.PublicID,
		ConversationID:    m.ConversationID,
		Channel:           m.Channel,
		MessageType:       m.Type,
		Direction:         m.Direction,
		ProviderType:      m.ProviderType,
		ProviderMessageID: m.ProviderMessageID,
		ProviderStatus:    string(m.ProviderStatus),
		FromContactID:     m.FromContactID,
		ToContactID:       m.ToContactID,
		Body:              m.Body,
		Attachments:       attachments,
		SentAt:            m.SentAt,
		ReceivedAt:        m.ReceivedAt,
	}, nil
}

func marshalJSON(value interface{}) (datatypes.JSON, error) {
	if value == nil {
		return datatypes.JSON([]byte("null")), nil
	}
	bytes, err := json.Marshal(value)
	return datatypes.JSON(bytes), err
}
