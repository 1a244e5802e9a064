package domain

// User is a registered account. The password field stores a bcrypt hash,
// never the plaintext credential; it is persisted with the record but never
// serialized to clients.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
