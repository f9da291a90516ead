package domain

import "time"

type Step struct {
	ID          int32      `json:"id"`
	ProjectID   int32      `json:"project_id"`
	Title       string     `json:"title"`
	Note        string     `json:"note"`
	Position    int32      `json:"position"`
	CompletedOn *time.Time `json:"completed_on,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
}

// Done reports whether the step has been completed.
func (s *Step) Done() bool {
	return s.CompletedOn != nil
}
