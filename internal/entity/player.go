package entity

// Player is the session record for a connected participant.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role Role   `json:"role,omitempty"`
}
