package entity

// User is a persistent record of someone who has connected at least once.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
