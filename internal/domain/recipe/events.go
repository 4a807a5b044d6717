package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	AuthorID  uuid.UUID
	Title     string
	CreatedAt time.Time
}

// EventName returns the event name
func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

// OccurredAt returns when the event occurred
func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}
