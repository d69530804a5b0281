package contact

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Resolver normalizes raw addresses into canonical contact identities.
type Resolver interface {
	Resolve(ctx context.Context, address string, isCustomerOwned bool) (*Contact, error)
}

// DefaultResolver implements Resolver against a contact repository.
type DefaultResolver struct {
	repo Repository
	log  zerolog.Logger
}

// NewResolver creates a contact resolver.
func NewResolver(repo Repository, log zerolog.Logger) *DefaultResolver {
	return &DefaultResolver{
		repo: repo,
		log:  log.With().Str("component", "contact_resolver").Logger(),
	}
}

// Resolve looks up the contact for an address, creating it on first
// reference. The customer-owned flag may be promoted from false to true but
// is never demoted. Two concurrent resolutions of the same address yield a
// single row: the loser of the creation race recovers by re-reading the
// winner.
func (r *DefaultResolver) Resolve(ctx context.Context, address string, isCustomerOwned bool) (*Contact, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"address must not be empty",
			nil,
			"contact-resolve-empty-address",
		)
	}

	addressType := InferAddressType(address)

	existing, err := r.repo.FindByAddress(ctx, address, addressType)
	if err == nil {
		return r.promoteIfNeeded(ctx, existing, isCustomerOwned)
	}
	if !platformerrors.IsNotFound(err) {
		return nil, err
	}

	created := &Contact{
		Address:         address,
		AddressType:     addressType,
		IsCustomerOwned: isCustomerOwned,
	}
	if err := r.repo.Create(ctx, created); err == nil {
		r.log.Debug().
			Str("address_type", string(addressType)).
			Bool("customer_owned", isCustomerOwned).
			Msg("contact created")
		return created, nil
	} else if !platformerrors.IsConflict(err) {
		return nil, err
	}

	// Lost the creation race: another flow inserted the same address
	// between our lookup and insert. Re-read the winning row.
	winner, err := r.repo.FindByAddress(ctx, address, addressType)
	if err != nil {
		return nil, err
	}
	return r.promoteIfNeeded(ctx, winner, isCustomerOwned)
}

func (r *DefaultResolver) promoteIfNeeded(ctx context.Context, c *Contact, isCustomerOwned bool) (*Contact, error) {
	if !isCustomerOwned || c.IsCustomerOwned {
		return c, nil
	}
	if err := r.repo.PromoteCustomerOwned(ctx, c.ID); err != nil {
		return nil, err
	}
	c.IsCustomerOwned = true
	return c, nil
}
