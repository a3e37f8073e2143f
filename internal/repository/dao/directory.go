package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrOwnershipNotFound = errors.New("character ownership not found")
	ErrProfileNotFound   = errors.New("user profile not found")
)

// Character, CharacterOwnership and UserProfile mirror the community
// platform's identity directory.
type Character struct {
	CharacterID int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"type:varchar(100);not null"`
}

type CharacterOwnership struct {
	CharacterID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID      uint  `gorm:"not null;index"`
}

type UserProfile struct {
	UserID          uint  `gorm:"primaryKey;autoIncrement:false"`
	MainCharacterID int64 `gorm:"not null"`
}

type DirectoryDAO struct {
	db *gorm.DB
}

func NewDirectoryDAO(db *gorm.DB) *DirectoryDAO {
	return &DirectoryDAO{
		db: db,
	}
}

func (d *DirectoryDAO) FindCharacter(ctx context.Context, characterID int64) (Character, error) {
	var character Character

	result := d.db.WithContext(ctx).First(&character, "character_id = ?", characterID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Character{}, ErrCharacterNotFound
		}

		return Character{}, result.Error
	}

	return character, nil
}

func (d *DirectoryDAO) FindOwnership(ctx context.Context, characterID int64) (CharacterOwnership, error) {
	var ownership CharacterOwnership

	result := d.db.WithContext(ctx).First(&ownership, "character_id = ?", characterID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CharacterOwnership{}, ErrOwnershipNotFound
		}

		return CharacterOwnership{}, result.Error
	}

	return ownership, nil
}

func (d *DirectoryDAO) FindProfile(ctx context.Context, userID uint) (UserProfile, error) {
	var profile UserProfile

	result := d.db.WithContext(ctx).First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UserProfile{}, ErrProfileNotFound
		}

		return UserProfile{}, result.Error
	}

	return profile, nil
}
