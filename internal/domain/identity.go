package domain

import "errors"

var (
	ErrCharacterUnknown = errors.New("payer character is unknown")
	ErrOwnershipUnknown = errors.New("payer character has no owner")
	ErrProfileUnknown   = errors.New("owner has no profile")
)

// Identity is a payer resolved through the directory. Fields are filled as far
// as resolution got, so a failed lookup still carries what is known.
type Identity struct {
	UserID          uint   `json:"user_id"`
	CharacterID     int64  `json:"character_id"`
	CharacterName   string `json:"character_name"`
	MainCharacterID int64  `json:"main_character_id"`
}
