package user

import (
	"fmt"
)

// CreatedAtLayout is the fixed timestamp format for the createdAt field,
// assigned exactly once when a user is created.
const CreatedAtLayout = "2006-01-02 15:04:05"

// User is a domain entity representing a user in the system
type User struct {
	id        int
	name      string
	email     string
	age       int
	createdAt string
}

// NewUser creates a new User entity. The id stays zero until the store
// assigns one via AssignID. Field validation happens in the orchestrator
// before construction.
func NewUser(name string, age int, email, createdAt string) *User {
	return &User{
		name:      name,
		email:     email,
		age:       age,
		createdAt: createdAt,
	}
}

// Reconstitute recreates a User entity from persistence
func Reconstitute(id int, name string, age int, email, createdAt string) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		age:       age,
		createdAt: createdAt,
	}
}

// AssignID sets the store-generated identifier. The id is immutable after
// creation, so assignment is a no-op once set.
func (u *User) AssignID(id int) {
	if u.id == 0 {
		u.id = id
	}
}

// SetName replaces the user's name
func (u *User) SetName(name string) {
	u.name = name
}

// SetEmail replaces the user's email
func (u *User) SetEmail(email string) {
	u.email = email
}

// SetAge replaces the user's age
func (u *User) SetAge(age int) {
	u.age = age
}

// Getters

func (u *User) ID() int {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Age() int {
	return u.age
}

func (u *User) CreatedAt() string {
	return u.createdAt
}

// String returns string representation (for debugging)
func (u *User) String() string {
	return fmt.Sprintf("User{id: %d, name: %s, age: %d, email: %s, createdAt: %s}",
		u.id, u.name, u.age, u.email, u.createdAt)
}
