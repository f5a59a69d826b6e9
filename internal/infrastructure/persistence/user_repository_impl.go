package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"userhub-core/internal/database"
	"userhub-core/internal/domain/user"
)

// UserRepositoryImpl implements the domain user.Repository interface
// against the users table. All statements go through db.Querier(ctx) so
// they join whatever transaction the context carries.
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new user repository implementation
func NewUserRepository(db *database.DB) user.Repository {
	return &UserRepositoryImpl{db: db}
}

// Save persists a user: insert when the id is still unassigned, update
// otherwise. On insert the generated id is assigned onto the entity.
func (r *UserRepositoryImpl) Save(ctx context.Context, usr *user.User) error {
	q := r.db.Querier(ctx)

	if usr.ID() == 0 {
		var id int
		err := q.QueryRowContext(ctx,
			`INSERT INTO users (user_name, user_email, user_age, user_created_at)
			 VALUES ($1, $2, $3, $4)
			 RETURNING user_id`,
			usr.Name(), usr.Email(), usr.Age(), usr.CreatedAt(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		usr.AssignID(id)
		return nil
	}

	_, err := q.ExecContext(ctx,
		`UPDATE users
		 SET user_name = $1, user_email = $2, user_age = $3
		 WHERE user_id = $4`,
		usr.Name(), usr.Email(), usr.Age(), usr.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by their ID
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*user.User, error) {
	row := r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT user_id, user_name, user_age, user_email, user_created_at
		 FROM users
		 WHERE user_id = $1`, id)

	usr, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound(id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return usr, nil
}

// FindAll retrieves all users ordered by id
func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT user_id, user_name, user_age, user_email, user_created_at
		 FROM users
		 ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		usr, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, usr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// ExistsByID checks if a user with the given id exists
func (r *UserRepositoryImpl) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *UserRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// DeleteByID removes a user from persistence
func (r *UserRepositoryImpl) DeleteByID(ctx context.Context, id int) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx,
		`DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*user.User, error) {
	var (
		id        int
		name      string
		age       int
		email     string
		createdAt string
	)
	if err := s.Scan(&id, &name, &age, &email, &createdAt); err != nil {
		return nil, err
	}
	return user.Reconstitute(id, name, age, email, createdAt), nil
}
