package policy

import "github.com/medtrack-dev/medtrack/internal/models"

type Operation string

const (
	PatientList   Operation = "patients:list"
	PatientGet    Operation = "patients:get"
	PatientCreate Operation = "patients:create"
	PatientUpdate Operation = "patients:update"
	PatientDelete Operation = "patients:delete"
	PatientFilter Operation = "patients:filter"
)

// allowedRoles is the single source of truth for which role may invoke which
// operation. Ownership narrowing for patient-role callers (own record only on
// list/get) is applied by the handlers on top of this table.
var allowedRoles = map[Operation][]models.Role{
	PatientList:   {models.RoleAdmin, models.RoleDoctor, models.RolePatient},
	PatientGet:    {models.RoleAdmin, models.RoleDoctor, models.RolePatient},
	PatientCreate: {models.RoleAdmin, models.RoleDoctor},
	PatientUpdate: {models.RoleAdmin, models.RoleDoctor},
	PatientDelete: {models.RoleAdmin},
	PatientFilter: {models.RoleAdmin, models.RoleDoctor, models.RolePatient},
}

// Allows reports whether the role may invoke the operation. Unknown
// operations are denied.
func Allows(op Operation, role models.Role) bool {
	for _, allowed := range allowedRoles[op] {
		if role == allowed {
			return true
		}
	}

	return false
}
