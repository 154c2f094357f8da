package models

// Group represents a named collection of members who share expenses.
// Deleting a group cascades to all of its transactions; a transaction
// must never outlive its parent group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Flat 4B", "Goa Trip").
	Name string

	// CreatedBy is the member who created the group. The creator is
	// always included in Members.
	CreatedBy string

	// Members is the set of member IDs in this group. Order carries no
	// meaning.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether id is a current member of the group.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
