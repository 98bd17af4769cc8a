package model

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task exists only inside a project's task list. It has no independent
// persistence path and travels with its parent on every save.
type Task struct {
	ID     int        `json:"id,omitempty"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}

// Project is the unit of sync between client and backend. A zero ID marks
// a draft that the backend has not assigned an identity yet; drafts omit
// the id field on the wire.
type Project struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      int    `json:"user_id,omitempty"`
	Tasks       []Task `json:"tasks"`
}

// IsDraft reports whether the project has been persisted by the backend.
// Save dispatches create vs update on this, nowhere else.
func (p Project) IsDraft() bool {
	return p.ID == 0
}

// Clone returns a copy whose task slice is independent of the receiver's,
// so editor changes do not leak into the collection before save.
func (p Project) Clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return out
}
