package domain

// Module is a named set of cards owned by a user.
type Module struct {
	ID          string
	Name        string
	Description string
	CardCount   int
}
