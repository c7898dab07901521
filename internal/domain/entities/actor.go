package entities

type Role string

const (
	RoleClient Role = "client"
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
	RoleSystem Role = "system"
)

// Actor is the authenticated caller of an operation, as read from a verified
// bearer token. Background jobs run as SystemActor.
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	Email  string `json:"email,omitempty"`
}

var SystemActor = Actor{UserID: "system", Role: RoleSystem}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}

func (a Actor) Is(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}
