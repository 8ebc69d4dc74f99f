package models

// Role names known to the portal. Users may hold several roles and act
// under one selected role at a time.
const (
	RoleAdmin     = "admin"
	RolePrincipal = "principal"
	RoleHOD       = "hod"
	RoleFaculty   = "faculty"
	RoleStudent   = "student"
	RoleJury      = "jury"
)

// DefaultRoles lists the roles seeded at startup.
var DefaultRoles = []string{
	RoleAdmin,
	RolePrincipal,
	RoleHOD,
	RoleFaculty,
	RoleStudent,
	RoleJury,
}
