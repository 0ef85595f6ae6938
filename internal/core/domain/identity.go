package domain

// Identity is the verified caller attached to a request. It is decoded from a
// session token and never persisted.
type Identity struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []RoleAssignment `json:"roles"`
}

// HasRole reports whether id holds role. Only the role name is compared; the
// franchise scope of a franchisee assignment is ignored.
func HasRole(id Identity, role Role) bool {
	for _, r := range id.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// CanManageFranchise reports whether id may mutate f: a global admin, a
// franchisee scoped to f, or one of the admins listed on f.
func CanManageFranchise(id Identity, f *Franchise) bool {
	if f == nil {
		return false
	}
	if HasRole(id, RoleAdmin) {
		return true
	}
	for _, r := range id.Roles {
		if r.Role == RoleFranchisee && r.ObjectID != nil && *r.ObjectID == f.ID {
			return true
		}
	}
	for _, a := range f.Admins {
		if a.ID == id.ID {
			return true
		}
	}
	return false
}
