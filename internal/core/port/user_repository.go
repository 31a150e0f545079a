package port

import "github.com/arklim/access-core/internal/core/domain"

// UserRepository is the canonical collection of users, keyed by username.
type UserRepository interface {
	Repository[domain.User]

	FindByUsername(username string) (domain.User, bool)
	FindByEmail(email string) (domain.User, bool)
	// FindByFilter returns users matching the predicate. A nil predicate
	// yields an empty result by policy.
	FindByFilter(filter domain.UserFilter) []domain.User
	// FindAllWith filters then sorts. A nil sorter leaves the filtered
	// order unspecified.
	FindAllWith(filter domain.UserFilter, sorter domain.UserSorter) []domain.User
	Exists(username string) bool
	// Update rebinds the stored user's mutable attributes.
	Update(username, newFullName, newEmail string) error
}
