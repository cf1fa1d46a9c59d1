package auth

// PermissionKey is a capability tag granted to a user and demanded by
// protected operations. The enumeration is closed; adding a key is a
// code change, not a data migration.
type PermissionKey string

const (
	PermissionCreateUser PermissionKey = "CreateUser"
	PermissionUpdateUser PermissionKey = "UpdateUser"
	PermissionDeleteUser PermissionKey = "DeleteUser"
	PermissionViewUser   PermissionKey = "ViewUser"

	PermissionManageTrips    PermissionKey = "ManageTrips"
	PermissionManageNews     PermissionKey = "ManageNews"
	PermissionManageContacts PermissionKey = "ManageContacts"
)

// AllPermissionKeys lists every key the system recognizes.
func AllPermissionKeys() []PermissionKey {
	return []PermissionKey{
		PermissionCreateUser,
		PermissionUpdateUser,
		PermissionDeleteUser,
		PermissionViewUser,
		PermissionManageTrips,
		PermissionManageNews,
		PermissionManageContacts,
	}
}

// DefaultUserPermissions are the keys assigned to a freshly registered
// account: full self-service user management, no content management.
func DefaultUserPermissions() []PermissionKey {
	return []PermissionKey{
		PermissionCreateUser,
		PermissionDeleteUser,
		PermissionUpdateUser,
		PermissionViewUser,
	}
}

// Requirement declares the permission keys an operation demands before
// it may execute. Built once at route registration and never mutated.
type Requirement struct {
	Required []PermissionKey
}

// HasPermissions reports whether granted satisfies req: every required
// key must be present (AND semantics). An empty requirement always
// passes. Pure and total; inputs are never mutated.
func HasPermissions(granted []PermissionKey, req Requirement) bool {
	for _, required := range req.Required {
		found := false
		for _, key := range granted {
			if key == required {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
