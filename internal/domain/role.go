package domain

// Role is a named set of permissions, granted globally or on one item.
type Role string

const (
	RoleManager           Role = "Manager"
	RoleSiteAdministrator Role = "Site Administrator"
	RoleEditor            Role = "Editor"
	RoleReviewer          Role = "Reviewer"
	RoleContributor       Role = "Contributor"
	RoleReader            Role = "Reader"
	RoleMember            Role = "Member"
	RoleAuthenticated     Role = "Authenticated"
)

var knownRoles = map[Role]struct{}{
	RoleManager:           {},
	RoleSiteAdministrator: {},
	RoleEditor:            {},
	RoleReviewer:          {},
	RoleContributor:       {},
	RoleReader:            {},
	RoleMember:            {},
	RoleAuthenticated:     {},
}

// Valid reports whether r is one of the portal roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// ContainsRole reports whether any of want is in have.
func ContainsRole(have []Role, want ...Role) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
