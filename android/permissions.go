package android

import "strings"

// PermissionKey returns the short key for a permission identifier:
// its final dot-separated segment, lowercased.
func PermissionKey(permission string) string {
	return strings.ToLower(permission[strings.LastIndex(permission, ".")+1:])
}

// PermissionKeys maps each permission's short key to the permission.
// Permissions sharing a short key collapse to the last one declared.
func PermissionKeys(permissions []string) map[string]string {
	keys := make(map[string]string, len(permissions))

	for _, permission := range permissions {
		keys[PermissionKey(permission)] = permission
	}

	return keys
}
