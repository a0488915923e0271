package domain

// Principal is the identity an operation runs as.
type Principal struct {
	ID     string
	Roles  []Role
	Groups []string
}

// HasRole reports whether the principal holds any of the roles globally.
func (p *Principal) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	return ContainsRole(p.Roles, roles...)
}

// PrincipalIDs lists the ids local roles may be granted to: the principal
// itself followed by its groups.
func (p *Principal) PrincipalIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, 0, len(p.Groups)+1)
	ids = append(ids, p.ID)
	return append(ids, p.Groups...)
}
