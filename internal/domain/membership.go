package domain

import "time"

// Membership is the durable fact that a user has access to a project.
// Email is a denormalized copy of the member's address kept for display.
type Membership struct {
	ProjectID int32     `json:"project_id"`
	UserID    int32     `json:"user_id"`
	Email     string    `json:"email"`
	AddedOn   time.Time `json:"added_on"`
}
