package models

// User roles carried in the token "role" claim or the X-User-Role header
const (
	RoleAdmin  = "admin"  // Manages the cantus firmus catalog
	RoleEditor = "editor" // May add cantus firmi but not delete them
	RoleUser   = "user"   // Validates exercises
)

// CanEditCatalog checks if a role may add cantus firmi
func CanEditCatalog(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// CanDeleteFromCatalog checks if a role may remove cantus firmi
func CanDeleteFromCatalog(role string) bool {
	return role == RoleAdmin
}
