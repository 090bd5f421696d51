package header

// Identity is the user information exposed by the session provider.
// Either field may be empty.
type Identity struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Session is either Authenticated or Anonymous.
type Session interface {
	// LoggedIn reports whether a user identity is present.
	LoggedIn() bool
	// DisplayName is the user's name, falling back to the email.
	DisplayName() string
	// Indicator is the short token shown in the header.
	Indicator() string
}

// Authenticated is a session with a known user.
type Authenticated struct {
	User Identity
}

func (a Authenticated) LoggedIn() bool { return true }

func (a Authenticated) DisplayName() string {
	if a.User.Name != "" {
		return a.User.Name
	}
	return a.User.Email
}

func (a Authenticated) Indicator() string { return Initials(a.DisplayName()) }

// Anonymous is the signed-out session.
type Anonymous struct{}

func (Anonymous) LoggedIn() bool      { return false }
func (Anonymous) DisplayName() string { return "" }
func (Anonymous) Indicator() string   { return FallbackInitial }

// SessionFor maps the provider's nullable session object to a Session.
func SessionFor(user *Identity) Session {
	if user == nil {
		return Anonymous{}
	}
	return Authenticated{User: *user}
}
