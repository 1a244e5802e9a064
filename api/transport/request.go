package transport

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TaskCreateRequest struct {
	Title string `json:"title"`
}

// TaskUpdateRequest carries a partial update. An empty field is treated as
// absent and leaves the stored value unchanged.
type TaskUpdateRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}
