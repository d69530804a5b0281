package contact

import (
	"strings"
	"time"
)

// AddressType classifies the physical address a contact is keyed by.
type AddressType string

const (
	AddressTypePhone AddressType = "phone"
	AddressTypeEmail AddressType = "email"
)

// Contact is the canonical identity for one physical address. At most one
// contact exists per (address, address_type) pair; the pair is enforced
// unique at the store level.
type Contact struct {
	ID              uint
	Address         string
	AddressType     AddressType
	IsCustomerOwned bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InferAddressType derives the address type from the shape of the raw
// address. The inference happens once, when a contact is first created, and
// is never revisited for an existing row.
func InferAddressType(address string) AddressType {
	if strings.Contains(address, "@") {
		return AddressTypeEmail
	}
	return AddressTypePhone
}
