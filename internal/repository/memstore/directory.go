package memstore

import (
	"context"
	"sync"

	"github.com/vietanh2810/isk-lottery/internal/domain"
)

type Directory struct {
	mu         sync.RWMutex
	characters map[int64]string
	owners     map[int64]uint
	mains      map[uint]int64
}

func NewDirectory() *Directory {
	return &Directory{
		characters: map[int64]string{},
		owners:     map[int64]uint{},
		mains:      map[uint]int64{},
	}
}

func (d *Directory) AddCharacter(characterID int64, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.characters[characterID] = name
}

func (d *Directory) SetOwner(characterID int64, userID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.owners[characterID] = userID
}

func (d *Directory) SetMainCharacter(userID uint, characterID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mains[userID] = characterID
}

// Register adds a fully resolvable character owned by userID.
func (d *Directory) Register(userID uint, characterID int64, name string) {
	d.AddCharacter(characterID, name)
	d.SetOwner(characterID, userID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.mains[userID]; !ok {
		d.mains[userID] = characterID
	}
}

func (d *Directory) Resolve(_ context.Context, payerID int64) (domain.Identity, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	identity := domain.Identity{CharacterID: payerID}

	name, ok := d.characters[payerID]
	if !ok {
		return identity, domain.ErrCharacterUnknown
	}
	identity.CharacterName = name

	userID, ok := d.owners[payerID]
	if !ok {
		return identity, domain.ErrOwnershipUnknown
	}
	identity.UserID = userID

	main, ok := d.mains[userID]
	if !ok {
		return identity, domain.ErrProfileUnknown
	}
	identity.MainCharacterID = main

	return identity, nil
}
