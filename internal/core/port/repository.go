package port

// Repository is the generic store contract shared by the user, role, and
// assignment stores. All operations are synchronous and in-memory; none block
// or carry a context.
type Repository[T any] interface {
	// Add inserts the item, enforcing the store's uniqueness invariants.
	Add(item T) error
	// Remove deletes the item and reports whether it was present.
	Remove(item T) bool
	// FindByID resolves the store's primary key.
	FindByID(id string) (T, bool)
	// FindAll returns a copy of the store's contents in unspecified order.
	FindAll() []T
	// Count reports the number of stored items.
	Count() int
	// Clear empties the store.
	Clear()
}
