package identity

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdvisor Role = "advisor"
	RoleHOD     Role = "hod"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdvisor, RoleHOD:
		return true
	}
	return false
}

// Closed sets validated at the transport boundary.
var (
	Departments = []string{"CSE", "AIML", "AIDS", "ECE", "IT", "EEE", "MECH", "CSBS", "CCE"}
	Sections    = []string{"A", "B", "C", "D"}
)

type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Department   string    `json:"department"`
	Role         Role      `json:"role"`
	Section      string    `json:"section,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
