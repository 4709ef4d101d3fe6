package model

// Identity is the already-authenticated caller identity forwarded by the
// reverse proxy as x-user-* headers. Handlers and services receive it as an
// explicit value; a nil *Identity means the request carried no identity.
type Identity struct {
	ID    int
	Email string
	Role  string
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
