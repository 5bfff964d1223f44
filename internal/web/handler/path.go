package handler

// IsLocalPath accepts only absolute paths on this host. Scheme relative
// paths like "//host" or "/\host" are rejected.
func IsLocalPath(p string) bool {
	return len(p) > 0 && p[0] == '/' && (len(p) == 1 || (p[1] != '/' && p[1] != '\\'))
}
