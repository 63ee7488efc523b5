// Package validation holds input checks shared by the service layer. The
// database enforces the same rules with CHECK constraints; validating here
// first gives callers precise messages instead of translated SQL errors.
package validation

import (
	"strings"

	"agora/internal/models"
)

const (
	MinUsernameLen      = 3
	MaxUsernameLen      = 50
	MaxBioLen           = 500
	MinPasswordLen      = 8
	MinCommunityNameLen = 3
	MaxCommunityNameLen = 100
)

func Username(username string) error {
	if len(username) < MinUsernameLen || len(username) > MaxUsernameLen {
		return models.NewValidationError("Username must be between 3 and 50 characters")
	}
	return nil
}

// Email mirrors the storage-layer pattern: something before and after a
// single @ sign. Deliverability is not checked.
func Email(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return models.NewValidationError("Invalid email address")
	}
	return nil
}

func Password(password string) error {
	if len(password) < MinPasswordLen {
		return models.NewValidationError("Password must be at least 8 characters")
	}
	return nil
}

func Bio(bio string) error {
	if len(bio) > MaxBioLen {
		return models.NewValidationError("Bio too long (max 500 characters)")
	}
	return nil
}

func CommunityName(name string) error {
	if len(name) < MinCommunityNameLen || len(name) > MaxCommunityNameLen {
		return models.NewValidationError("Community name must be between 3 and 100 characters")
	}
	return nil
}

// SearchTerm trims the term and rejects empty searches.
func SearchTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", models.NewValidationError("Search term is required")
	}
	return term, nil
}
