package constants

import "fmt"

// Role yang dikenal aplikasi
const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleSecretary = "secretary"
	RolePrincipal = "principal"
	RoleSecurity  = "security"
	RoleAdmin     = "admin"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess  = "❌ Hanya teacher atau admin yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess  = "❌ Hanya student yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess     = "❌ Hanya secretary, principal, atau admin yang boleh mengakses fitur %s."
	ErrOnlySecurityCanAccess  = "❌ Hanya security yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorSecurity(feature string) string {
	return fmt.Sprintf(ErrOnlySecurityCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleSecretary,
		RolePrincipal,
		RoleSecurity,
		RoleAdmin,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleSecretary,
		RolePrincipal,
		RoleAdmin,
	}

	StaffOnly = []string{
		RoleSecretary,
		RolePrincipal,
		RoleAdmin,
	}

	PrincipalAndAbove = []string{
		RolePrincipal,
		RoleAdmin,
	}

	SecurityOnly = []string{
		RoleSecurity,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
