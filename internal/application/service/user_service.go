package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"userhub-core/internal/application/dto"
	"userhub-core/internal/domain/user"
)

// DeliveryInfo is the broker acknowledgment for a published event.
type DeliveryInfo struct {
	Topic     string
	Partition int32
	Offset    int64
}

// EventPublisher is the broker port. Send blocks until the broker accepts
// or rejects the message.
type EventPublisher interface {
	Send(ctx context.Context, topic, key string, payload any) (*DeliveryInfo, error)
}

// TxRunner owns the transaction scope each lifecycle operation runs in.
// An error returned from fn rolls back everything done inside it.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserService orchestrates the user lifecycle: validation, email
// uniqueness, persistence and event emission, all inside one transaction
// per operation. A publish failure aborts the transaction, so a record
// change is never observable without its event, and vice versa.
type UserService struct {
	userRepo  user.Repository
	publisher EventPublisher
	tx        TxRunner
	now       func() time.Time
}

// NewUserService creates a new user service. now may be nil, in which case
// the wall clock is used; tests inject a fixed clock.
func NewUserService(userRepo user.Repository, publisher EventPublisher, tx TxRunner, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{
		userRepo:  userRepo,
		publisher: publisher,
		tx:        tx,
		now:       now,
	}
}

// CreateUser creates a new user and publishes a creation event. The insert
// and the publish share one transaction: if the broker rejects the send,
// the insert is rolled back.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	log.Printf("creating user: %s", req.Email)

	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)

	var resp *dto.UserResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		inUse, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if inUse {
			return user.ErrDuplicateEmail(email)
		}

		createdAt := s.now().Format(user.CreatedAtLayout)
		usr := user.NewUser(strings.TrimSpace(req.Name), *req.Age, email, createdAt)

		if err := s.userRepo.Save(ctx, usr); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		log.Printf("user created with ID: %d", usr.ID())

		event := user.NewUserCreatedEvent(usr.ID(), usr.Email())
		info, err := s.publisher.Send(ctx, user.TopicUserCreated, strconv.Itoa(usr.ID()), event)
		if err != nil {
			return user.ErrPublishFailed(user.TopicUserCreated, err)
		}
		log.Printf("create event delivered: topic=%s partition=%d offset=%d",
			info.Topic, info.Partition, info.Offset)

		resp = toDTO(usr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int) (*dto.UserResponse, error) {
	var resp *dto.UserResponse
	err := s.tx.WithinReadTx(ctx, func(ctx context.Context) error {
		usr, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = toDTO(usr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAllUsers retrieves every user in store order. An empty store yields
// an empty list, never an error.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	var resp []*dto.UserResponse
	err := s.tx.WithinReadTx(ctx, func(ctx context.Context) error {
		users, err := s.userRepo.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		resp = make([]*dto.UserResponse, len(users))
		for i, usr := range users {
			resp[i] = toDTO(usr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateUser applies the present fields of req to an existing user. A
// request that changes nothing skips the store write and returns the
// current record as success. No event is emitted on update.
func (s *UserService) UpdateUser(ctx context.Context, id int, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	log.Printf("updating user ID: %d", id)

	var resp *dto.UserResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		usr, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := validateUpdateRequest(req); err != nil {
			return err
		}

		updated := false

		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			usr.SetName(strings.TrimSpace(*req.Name))
			updated = true
		}

		if req.Age != nil {
			if !user.ValidateAge(*req.Age) {
				return user.ErrValidation("age must be between 0 and 80")
			}
			usr.SetAge(*req.Age)
			updated = true
		}

		if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
			newEmail := strings.TrimSpace(*req.Email)
			// Same email: no uniqueness round-trip, no self-collision.
			if newEmail != usr.Email() {
				inUse, err := s.userRepo.ExistsByEmail(ctx, newEmail)
				if err != nil {
					return fmt.Errorf("failed to check email uniqueness: %w", err)
				}
				if inUse {
					return user.ErrDuplicateEmail(newEmail)
				}
			}
			usr.SetEmail(newEmail)
			updated = true
		}

		if updated {
			if err := s.userRepo.Save(ctx, usr); err != nil {
				return fmt.Errorf("failed to save user: %w", err)
			}
			log.Printf("user ID %d updated", id)
		} else {
			log.Printf("user ID %d unchanged", id)
		}

		resp = toDTO(usr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteUser removes a user and publishes a deletion event carrying the
// email the record held just before deletion. The delete and the publish
// share one transaction: a rejected send rolls the deletion back.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	log.Printf("deleting user ID: %d", id)

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return user.ErrUserNotFound(id)
		}

		usr, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		userEmail := usr.Email()

		if err := s.userRepo.DeleteByID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		log.Printf("user ID %d deleted", id)

		event := user.NewUserDeletedEvent(id, userEmail)
		info, err := s.publisher.Send(ctx, user.TopicUserDeleted, strconv.Itoa(id), event)
		if err != nil {
			return user.ErrPublishFailed(user.TopicUserDeleted, err)
		}
		log.Printf("delete event delivered: topic=%s partition=%d offset=%d",
			info.Topic, info.Partition, info.Offset)
		return nil
	})
}

// validateCreateRequest fails fast on the first violation; the store is
// never touched for an invalid request.
func validateCreateRequest(req *dto.CreateUserRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return user.ErrValidation("name must not be blank")
	}
	if strings.TrimSpace(req.Email) == "" {
		return user.ErrValidation("email must not be blank")
	}
	if !user.ValidateEmail(req.Email) {
		return user.ErrValidation("email format is invalid")
	}
	if req.Age == nil || !user.ValidateAge(*req.Age) {
		return user.ErrValidation("age must be between 0 and 80")
	}
	return nil
}

// validateUpdateRequest shape-checks only the fields that are present.
func validateUpdateRequest(req *dto.UpdateUserRequest) error {
	if req.Age != nil && !user.ValidateAge(*req.Age) {
		return user.ErrValidation("age must be between 0 and 80")
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" && !user.ValidateEmail(*req.Email) {
		return user.ErrValidation("email format is invalid")
	}
	return nil
}

// toDTO converts a domain user to its response shape
func toDTO(usr *user.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        usr.ID(),
		Name:      usr.Name(),
		Age:       usr.Age(),
		Email:     usr.Email(),
		CreatedAt: usr.CreatedAt(),
	}
}
