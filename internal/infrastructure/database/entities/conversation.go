package entities

import (
	"time"

	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
)

// Conversation represents the database schema for long-lived threads.
//
// The denormalized (customer_contact_id, contact_contact_id) pair mirrors
// the participant rows and carries the unique index that serializes
// concurrent get-or-create for the same pair: one insert wins, the others
// see a duplicate-key conflict and re-read.
type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Subject  *string `gorm:"type:text"`

	CustomerContactID uint `gorm:"uniqueIndex:uq_conversations_contact_pair;not null"`
	ContactContactID  uint `gorm:"uniqueIndex:uq_conversations_contact_pair;not null"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant binds a contact to a conversation with a role.
// The composite primary key keeps a contact from appearing twice in one
// conversation.
type ConversationParticipant struct {
	ConversationID uint                         `gorm:"primaryKey"`
	ContactID      uint                         `gorm:"primaryKey;index:idx_conv_participants_contact_id"`
	Role           conversation.ParticipantRole `gorm:"type:varchar(10);not null"`
	CreatedAt      time.Time                    `gorm:"autoCreateTime"`
}

// TableName specifies the table name for ConversationParticipant.
func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// EtoD converts database entity to domain model
func (c *Conversation) EtoD() *conversation.Conversation {
	participants := make([]conversation.Participant, len(c.Participants))
	for i, p := range c.Participants {
		participants[i] = conversation.Participant{
			ConversationID: p.ConversationID,
			ContactID:      p.ContactID,
			Role:           p.Role,
			CreatedAt:      p.CreatedAt,
		}
	}

	return &conversation.Conversation{
		ID:                c.ID,
		PublicID:          c.PublicID,
		Subject:           c.Subject,
		CustomerContactID: c.CustomerContactID,
		ContactContactID:  c.ContactContactID,
		Participants:      participants,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// NewSchemaConversation creates a database entity from domain model
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	participants := make([]ConversationParticipant, len(c.Participants))
	for i, p := range c.Participants {
		participants[i] = ConversationParticipant{
			ContactID: p.ContactID,
			Role:      p.Role,
		}
	}

	return &Conversation{
		ID:                c.ID,
		PublicID:          c.PublicID,
		Subject:           c.Subject,
		CustomerContactID: c.CustomerContactID,
		ContactContactID:  c.ContactContactID,
		Participants:      participants,
	}
}
