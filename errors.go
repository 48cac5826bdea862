package subbreaker

import "errors"

// Configuration errors.
var (
	// ErrAlphabetTooLarge is returned for alphabets with more than MaxAlphabetLen symbols.
	ErrAlphabetTooLarge = errors.New("alphabet must have less or equal than 32 characters")
	// ErrInvalidModel is returned for model records which do not form a usable model.
	ErrInvalidModel = errors.New("invalid quadgram model")
)

// Input errors.
var (
	// ErrInsufficientInput is returned if a text does not contain a single quadgram.
	ErrInsufficientInput = errors.New("more than three characters from the given alphabet are required")
	// ErrCiphertextTooShort is returned if a ciphertext has less than 4 characters
	// from the alphabet.
	ErrCiphertextTooShort = errors.New("ciphertext is too short")
)

// Parameter range errors.
var (
	ErrRoundsOutOfRange      = errors.New("maximum number of rounds not in the valid range 1..10000")
	ErrConsolidateOutOfRange = errors.New("consolidate parameter out of valid range 1..30")
)
