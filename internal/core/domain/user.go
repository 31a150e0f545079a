package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// User is an immutable identity value. ValidateUser is the only construction
// path; a User that exists passed every rule.
type User struct {
	Username string
	FullName string
	Email    string
}

// ValidateUser checks the rules in order and returns the value only if all
// pass: non-blank username, username pattern, non-blank full name, email with
// "@" followed eventually by ".".
func ValidateUser(username, fullname, email string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, fmt.Errorf("%w: username must be non-blank", ErrInvalidArgument)
	}
	if !usernamePattern.MatchString(username) {
		return User{}, fmt.Errorf("%w: username must be 3-20 characters of letters, digits, or underscore", ErrInvalidArgument)
	}
	if strings.TrimSpace(fullname) == "" {
		return User{}, fmt.Errorf("%w: full name must be non-blank", ErrInvalidArgument)
	}
	if !validEmail(email) {
		return User{}, fmt.Errorf("%w: email %q is malformed", ErrInvalidArgument, email)
	}

	return User{Username: username, FullName: fullname, Email: email}, nil
}

func validEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	at := strings.Index(email, "@")
	if at < 0 {
		return false
	}
	return strings.Contains(email[at:], ".")
}

// Format renders the user for display.
func (u User) Format() string {
	return fmt.Sprintf("%s (%s) <%s>", u.Username, u.FullName, u.Email)
}
