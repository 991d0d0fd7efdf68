package entity

// Role identifies one of the two sides at a table. Black always moves first.
type Role string

const (
	RoleBlack Role = "black"
	RoleWhite Role = "white"

	// EmptyCell marks an unoccupied board cell.
	EmptyCell Role = ""
)

// Other returns the opposing role.
func (that Role) Other() Role {
	if that == RoleBlack {
		return RoleWhite
	}
	return RoleBlack
}
