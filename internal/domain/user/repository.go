package user

import "context"

// Repository is the persistence port for User entities. Implementations
// must join any transaction carried by ctx so that a whole lifecycle
// operation shares one scope.
type Repository interface {
	// Save persists the user: insert when the id is still zero (the
	// store-generated id is assigned onto the entity), update otherwise.
	Save(ctx context.Context, usr *User) error

	// FindByID retrieves a user, returning ErrUserNotFound when absent.
	FindByID(ctx context.Context, id int) (*User, error)

	// FindAll retrieves all users in store iteration order. An empty store
	// yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID checks whether a record with the given id exists.
	ExistsByID(ctx context.Context, id int) (bool, error)

	// ExistsByEmail checks whether any record holds the given email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// DeleteByID physically removes the record.
	DeleteByID(ctx context.Context, id int) error
}
