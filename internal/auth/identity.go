package auth

// User is the signed-in account as described by the access token.
type User struct {
	ID    string
	Email string
	Name  string
}
