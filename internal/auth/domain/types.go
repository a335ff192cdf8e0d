package domain

import "time"

// UserStatus represents the lifecycle state of an account.
type UserStatus string

const (
	// UserStatusActive indicates a usable account.
	UserStatusActive UserStatus = "active"
	// UserStatusDisabled indicates the account is disabled and cannot sign in.
	UserStatusDisabled UserStatus = "disabled"
)

// Role names a bundle of capabilities granted to an account.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"
	// RoleAdmin additionally grants user-management capabilities.
	RoleAdmin Role = "admin"
)

// Capability is a named permission checked per route.
type Capability string

const (
	// CapabilityGetReminders allows reading the caller's own reminders.
	CapabilityGetReminders Capability = "getReminders"
	// CapabilityManageReminders allows creating, updating and deleting the
	// caller's own reminders.
	CapabilityManageReminders Capability = "manageReminders"
	// CapabilityGetUsers allows listing accounts.
	CapabilityGetUsers Capability = "getUsers"
	// CapabilityManageUsers allows mutating accounts.
	CapabilityManageUsers Capability = "manageUsers"
)

// roleCapabilities maps each role to its granted capabilities. Both roles
// currently carry the full reminder capability set; the two reminder
// capabilities stay distinct so future roles can differentiate reads from
// writes without a contract change.
var roleCapabilities = map[Role][]Capability{
	RoleUser:  {CapabilityGetReminders, CapabilityManageReminders},
	RoleAdmin: {CapabilityGetUsers, CapabilityManageUsers, CapabilityGetReminders, CapabilityManageReminders},
}

// IsValid reports whether the role is known.
func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can reports whether the role grants the capability.
func (r Role) Can(capability Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == capability {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the capabilities granted to the role.
func (r Role) Capabilities() []Capability {
	granted := roleCapabilities[r]
	out := make([]Capability, len(granted))
	copy(out, granted)
	return out
}

// User represents an account that owns reminders.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Role         Role
	Status       UserStatus
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claims carries the verified contents of an access token.
type Claims struct {
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// TokenPair is returned to a client after a successful login.
type TokenPair struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}
