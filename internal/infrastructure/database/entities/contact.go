package entities

import (
	"time"

	"github.com/yama-bushi/messaging-service/internal/domain/contact"
)

// Contact represents the database schema for canonical address identities.
// (address, address_type) carries a unique index: at most one row per
// physical address.
type Contact struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Address         string              `gorm:"type:varchar(320);uniqueIndex:uq_contacts_address_type;not null"`
	AddressType     contact.AddressType `gorm:"type:varchar(10);uniqueIndex:uq_contacts_address_type;not null"`
	IsCustomerOwned bool                `gorm:"not null;default:false"`
}

// TableName specifies the table name for Contact.
func (Contact) TableName() string {
	return "contacts"
}

// EtoD converts database entity to domain model
func (c *Contact) EtoD() *contact.Contact {
	return &contact.Contact{
		ID:              c.ID,
		Address:         c.Address,
		AddressType:     c.AddressType,
		IsCustomerOwned: c.IsCustomerOwned,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// NewSchemaContact creates a database entity from domain model
func NewSchemaContact(c *contact.Contact) *Contact {
	return &Contact{
		ID:              c.ID,
		Address:         c.Address,
		AddressType:     c.AddressType,
		IsCustomerOwned: c.IsCustomerOwned,
	}
}
