package model

// Role is the discriminator carried by the two singleton accounts.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleGovernment Role = "GOVERNMENT"
)

type Admin struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

type Government struct {
	ID         string `json:"id"`
	AgencyName string `json:"agencyName"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Password   string `json:"password,omitempty"`
}

// AccountKind tags the union of the four account types. The reference
// behavior discriminated structurally (role field, then lookup token, else
// doctor); here the kind is set once at construction and carried explicitly.
type AccountKind string

const (
	KindPatient    AccountKind = "patient"
	KindDoctor     AccountKind = "doctor"
	KindAdmin      AccountKind = "admin"
	KindGovernment AccountKind = "government"
)

// Account is a tagged union: exactly one of the four pointers is non-nil and
// it matches Kind.
type Account struct {
	Kind       AccountKind `json:"kind"`
	Patient    *Patient    `json:"patient,omitempty"`
	Doctor     *Doctor     `json:"doctor,omitempty"`
	Admin      *Admin      `json:"admin,omitempty"`
	Government *Government `json:"government,omitempty"`
}

// ID returns the identifier of whichever variant is populated.
func (a *Account) ID() string {
	switch a.Kind {
	case KindPatient:
		return a.Patient.ID
	case KindDoctor:
		return a.Doctor.ID
	case KindAdmin:
		return a.Admin.ID
	case KindGovernment:
		return a.Government.ID
	}
	return ""
}

// Email returns the login email of whichever variant is populated.
func (a *Account) Email() string {
	switch a.Kind {
	case KindPatient:
		return a.Patient.Email
	case KindDoctor:
		return a.Doctor.Email
	case KindAdmin:
		return a.Admin.Email
	case KindGovernment:
		return a.Government.Email
	}
	return ""
}

func (a *Account) password() string {
	switch a.Kind {
	case KindPatient:
		return a.Patient.Password
	case KindDoctor:
		return a.Doctor.Password
	case KindAdmin:
		return a.Admin.Password
	case KindGovernment:
		return a.Government.Password
	}
	return ""
}

// PasswordMatches compares the stored password with the supplied one. The
// reference system stores passwords in the clear and compares them directly;
// hardening is out of scope here.
func (a *Account) PasswordMatches(password string) bool {
	return a.password() == password
}
