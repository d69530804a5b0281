package conversation

import "time"

// ParticipantRole tags which side of the thread a contact sits on.
type ParticipantRole string

const (
	RoleCustomer ParticipantRole = "customer"
	RoleContact  ParticipantRole = "contact"
)

// Participant binds a contact to a conversation with a role. A conversation
// holds exactly two participants, one of each role.
type Participant struct {
	ConversationID uint
	ContactID      uint
	Role           ParticipantRole
	CreatedAt      time.Time
}

// Conversation is a long-lived thread between one customer-role contact and
// one contact-role contact, independent of channel or provider.
//
// CustomerContactID and ContactContactID mirror the participant rows; the
// ordered pair carries a unique index at the store level, which is what
// makes concurrent get-or-create yield a single row.
type Conversation struct {
	ID                uint
	PublicID          string
	Subject           *string
	CustomerContactID uint
	ContactContactID  uint
	Participants      []Participant
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Summary is the recency-ordered listing shape consumed by presentation.
type Summary struct {
	ID          uint      `json:"id"`
	PublicID    string    `json:"public_id"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewConversation builds the conversation and its two participant rows for
// a (customer, contact) pair. Role assignment is fixed by the caller's
// framing; the engine never infers roles from content.
func NewConversation(customerContactID, contactContactID uint) *Conversation {
	return &Conversation{
		CustomerContactID: customerContactID,
		ContactContactID:  contactContactID,
		Participants: []Participant{
			{ContactID: customerContactID, Role: RoleCustomer},
			{ContactID: contactContactID, Role: RoleContact},
		},
	}
}
