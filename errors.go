package nlg

import "errors"

var (
	// ErrUnsupportedLanguage is returned when no rules or lexical data
	// exist for a language.
	ErrUnsupportedLanguage = errors.New("nlg: unsupported language")

	// ErrUnknownVerbBase is returned when a verb's base form matches no
	// known conjugation group.
	ErrUnknownVerbBase = errors.New("nlg: unrecognised verb base form")

	// ErrDuplicateID is returned when registering an entry whose id is
	// already in the lexicon.
	ErrDuplicateID = errors.New("nlg: duplicate word id")
)
