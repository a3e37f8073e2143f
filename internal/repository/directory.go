package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/isk-lottery/internal/domain"
	"github.com/vietanh2810/isk-lottery/internal/repository/dao"
)

type DirectoryDAO interface {
	FindCharacter(ctx context.Context, characterID int64) (dao.Character, error)
	FindOwnership(ctx context.Context, characterID int64) (dao.CharacterOwnership, error)
	FindProfile(ctx context.Context, userID uint) (dao.UserProfile, error)
}

// DirectoryRepository resolves wallet payers to platform users.
type DirectoryRepository struct {
	dao DirectoryDAO
}

func NewDirectoryRepository(dao DirectoryDAO) *DirectoryRepository {
	return &DirectoryRepository{
		dao: dao,
	}
}

// Resolve walks character -> owner -> profile. The returned identity holds
// whatever was found before a failing hop.
func (r *DirectoryRepository) Resolve(ctx context.Context, payerID int64) (domain.Identity, error) {
	identity := domain.Identity{CharacterID: payerID}

	character, err := r.dao.FindCharacter(ctx, payerID)
	if err != nil {
		if errors.Is(err, dao.ErrCharacterNotFound) {
			return identity, domain.ErrCharacterUnknown
		}

		return identity, fmt.Errorf("r.dao.FindCharacter -> %w", err)
	}
	identity.CharacterName = character.Name

	ownership, err := r.dao.FindOwnership(ctx, payerID)
	if err != nil {
		if errors.Is(err, dao.ErrOwnershipNotFound) {
			return identity, domain.ErrOwnershipUnknown
		}

		return identity, fmt.Errorf("r.dao.FindOwnership -> %w", err)
	}
	identity.UserID = ownership.UserID

	profile, err := r.dao.FindProfile(ctx, ownership.UserID)
	if err != nil {
		if errors.Is(err, dao.ErrProfileNotFound) {
			return identity, domain.ErrProfileUnknown
		}

		return identity, fmt.Errorf("r.dao.FindProfile -> %w", err)
	}
	identity.MainCharacterID = profile.MainCharacterID

	return identity, nil
}
