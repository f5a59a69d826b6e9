package user

// Broker topics for lifecycle events. Updates deliberately emit nothing.
const (
	TopicUserCreated = "user-created-event-topic"
	TopicUserDeleted = "user-delete-event-topic"
)

// UserCreatedEvent is published once per successful creation, keyed by the
// decimal form of the user id.
type UserCreatedEvent struct {
	UserID    int    `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(userID int, userEmail string) *UserCreatedEvent {
	return &UserCreatedEvent{
		UserID:    userID,
		UserEmail: userEmail,
	}
}

// UserDeletedEvent is published once per successful deletion, carrying the
// email the record held just before it was removed.
type UserDeletedEvent struct {
	UserID    int    `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// NewUserDeletedEvent creates a new UserDeletedEvent
func NewUserDeletedEvent(userID int, userEmail string) *UserDeletedEvent {
	return &UserDeletedEvent{
		UserID:    userID,
		UserEmail: userEmail,
	}
}
