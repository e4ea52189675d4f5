package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrUsernameTooShort     = errors.New("username must be at least 3 characters")
	ErrUsernameTooLong      = errors.New("username must be at most 50 characters")
	ErrUsernameInvalidChars = errors.New("username can only contain letters, numbers, hyphens, underscores, and dots")
	ErrUsernameReserved     = errors.New("username is reserved and cannot be used")

	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")

	ErrTitleEmpty   = errors.New("title is required")
	ErrTitleTooLong = errors.New("title must be at most 200 characters")
)

var reservedUsernames = map[string]bool{
	"admin":    true,
	"root":     true,
	"system":   true,
	"api":      true,
	"health":   true,
	"status":   true,
	"login":    true,
	"logout":   true,
	"register": true,
	"auth":     true,
	"notes":    true,
	"me":       true,
	"support":  true,
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func ValidateUsername(username string) error {
	if len(username) < 3 {
		return ErrUsernameTooShort
	}
	if len(username) > 50 {
		return ErrUsernameTooLong
	}

	if !usernameRegex.MatchString(username) {
		return ErrUsernameInvalidChars
	}

	if reservedUsernames[strings.ToLower(username)] {
		return ErrUsernameReserved
	}

	return nil
}

// ValidatePassword bounds length only; 72 bytes is the bcrypt input limit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}

func ValidateNoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
