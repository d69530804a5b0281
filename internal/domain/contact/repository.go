package contact

import "context"

// Repository persists contact identities.
//
// Create must surface a CONFLICT platform error when another row already
// holds the same (address, address_type) pair; FindByAddress must surface
// NOT_FOUND when no row matches. The resolver relies on both to recover
// from concurrent creation races.
type Repository interface {
	FindByAddress(ctx context.Context, address string, addressType AddressType) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	PromoteCustomerOwned(ctx context.Context, id uint) error
}
