package domain

// Role names a capability granted to a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
	RoleDiner      Role = "diner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFranchisee, RoleDiner:
		return true
	}
	return false
}

// RoleAssignment grants a role to a user. ObjectID scopes a franchisee role to
// the franchise it administers and is always nil for admin and diner.
type RoleAssignment struct {
	Role     Role   `json:"role" bson:"role"`
	ObjectID *int64 `json:"objectId,omitempty" bson:"object_id,omitempty"`
}

// Assign builds a RoleAssignment, dropping objectID for roles that are not
// franchise scoped.
func Assign(role Role, objectID int64) RoleAssignment {
	if role != RoleFranchisee {
		return RoleAssignment{Role: role}
	}
	id := objectID
	return RoleAssignment{Role: role, ObjectID: &id}
}

// User models a registered account.
type User struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Roles        []RoleAssignment `json:"roles"`
}

// Identity returns the claims view of u that is embedded in session tokens.
func (u *User) Identity() Identity {
	roles := make([]RoleAssignment, len(u.Roles))
	copy(roles, u.Roles)
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Roles: roles}
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users []User `json:"users"`
	More  bool   `json:"more"`
}
