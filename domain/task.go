package domain

// StatusPending is the status assigned to every freshly created task.
// Status is otherwise free-form and owned by the client.
const StatusPending = "pending"

// Task is a to-do item owned by a single user.
type Task struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Status string `json:"status"`
}
