package domain

const (
	RoleSales   = "Sales"
	RoleSupport = "Support"
)

// CompanyJobID is the sentinel salesperson id marking a company-wide job
// that has no individual owner.
const CompanyJobID = "COMPANY_JOB"

// User models a registered actor in the system. Password is only populated
// transiently during the login/register request cycle; profiles held in
// application state or the session store never carry it.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FullName returns the display name used in hand-off messages and views.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// StripPassword returns a copy of the user safe to persist and display.
func (u User) StripPassword() User {
	u.Password = ""
	return u
}

// ValidRole reports whether role is one of the two registrable roles.
func ValidRole(role string) bool {
	return role == RoleSales || role == RoleSupport
}
