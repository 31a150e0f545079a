package domain

import (
	"fmt"
	"strings"
)

// UserFilter is a composable predicate over users.
type UserFilter func(User) bool

// And composes both predicates conjunctively.
func (f UserFilter) And(other UserFilter) UserFilter {
	return func(u User) bool { return f(u) && other(u) }
}

// Or composes both predicates disjunctively.
func (f UserFilter) Or(other UserFilter) UserFilter {
	return func(u User) bool { return f(u) || other(u) }
}

// UserByUsername matches the exact username.
func UserByUsername(username string) (UserFilter, error) {
	expected, err := trimmedArg(username, "username")
	if err != nil {
		return nil, err
	}
	return func(u User) bool { return u.Username == expected }, nil
}

// UserByUsernameContains matches usernames containing the substring, case-insensitively.
func UserByUsernameContains(substring string) (UserFilter, error) {
	part, err := trimmedArg(substring, "substring")
	if err != nil {
		return nil, err
	}
	part = strings.ToLower(part)
	return func(u User) bool { return strings.Contains(strings.ToLower(u.Username), part) }, nil
}

// UserByEmail matches the exact email.
func UserByEmail(email string) (UserFilter, error) {
	expected, err := trimmedArg(email, "email")
	if err != nil {
		return nil, err
	}
	return func(u User) bool { return u.Email == expected }, nil
}

// UserByEmailDomain matches emails ending with the domain suffix.
func UserByEmailDomain(domain string) (UserFilter, error) {
	expected, err := trimmedArg(domain, "domain")
	if err != nil {
		return nil, err
	}
	return func(u User) bool { return strings.HasSuffix(u.Email, expected) }, nil
}

// UserByFullNameContains matches full names containing the substring, case-insensitively.
func UserByFullNameContains(substring string) (UserFilter, error) {
	part, err := trimmedArg(substring, "substring")
	if err != nil {
		return nil, err
	}
	part = strings.ToLower(part)
	return func(u User) bool { return strings.Contains(strings.ToLower(u.FullName), part) }, nil
}

// trimmedArg rejects blank filter arguments at construction time, not at
// evaluation time.
func trimmedArg(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must be non-blank", ErrInvalidArgument, field)
	}
	return trimmed, nil
}
