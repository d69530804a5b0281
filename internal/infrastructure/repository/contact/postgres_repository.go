package contact

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/infrastructure/database/entities"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// Repository persists contact identities.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a contact repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByAddress fetches a contact by its unique (address, address_type) key.
func (r *Repository) FindByAddress(ctx context.Context, address string, addressType domain.AddressType) (*domain.Contact, error) {
	var entity entities.Contact
	if err := r.db.WithContext(ctx).
		Where("address = ? AND address_type = ?", address, addressType).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeNotFound,
				fmt.Sprintf("contact not found: %s", address),
				nil,
				"contact-find-by-address-not-found",
			)
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to fetch contact",
			err,
			"contact-find-by-address-db-error",
		)
	}
	return entity.EtoD(), nil
}

// Create inserts the contact record. A duplicate (address, address_type)
// pair surfaces as a CONFLICT error for the resolver to recover from.
func (r *Repository) Create(ctx context.Context, c *domain.Contact) error {
	entity := entities.NewSchemaContact(c)

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeConflict,
				"contact already exists for address",
				err,
				"contact-create-conflict",
			)
		}
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create contact",
			err,
			"contact-create-db-error",
		)
	}

	c.ID = entity.ID
	c.CreatedAt = entity.CreatedAt
	c.UpdatedAt = entity.UpdatedAt
	return nil
}

// PromoteCustomerOwned flips is_customer_owned to true. There is no
// downgrade path.
func (r *Repository) PromoteCustomerOwned(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&entities.Contact{}).
		Where("id = ?", id).
		Update("is_customer_owned", true).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to promote contact ownership",
			err,
			"contact-promote-db-error",
		)
	}
	return nil
}
