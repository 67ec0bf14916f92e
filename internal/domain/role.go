package domain

// Role is the closed set of account roles. The numeric ids are the seeded
// primary keys of the roles table.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleCompany   Role = "company"
)

var roleIDs = map[Role]int{
	RoleJobSeeker: 1,
	RoleCompany:   2,
}

// Roles returns every role in seed order.
func Roles() []Role {
	return []Role{RoleJobSeeker, RoleCompany}
}

func (r Role) Valid() bool {
	_, ok := roleIDs[r]
	return ok
}

// ID returns the seeded roles.id for r, or 0 if r is not a known role.
func (r Role) ID() int {
	return roleIDs[r]
}

func RoleFromID(id int) (Role, bool) {
	for role, roleID := range roleIDs {
		if roleID == id {
			return role, true
		}
	}
	return "", false
}
