package entity

// Client is the resolved identity of a caller, constructed once per request
// by the identity resolver and immutable for the request's duration. It is a
// closed sum type: exactly one of ClientUser, ClientUnregistered or
// ClientUnverified, so the permission engine can match exhaustively.
type Client interface {
	isClient()

	// State returns a short machine-readable name for logging.
	State() string
}

// ClientUser is a caller resolved to a persisted account.
type ClientUser struct {
	User User
}

// ClientUnregistered is a caller with a verified token whose email is not yet
// associated with an account.
type ClientUnregistered struct {
	Email string
}

// ClientUnverified is a caller with no token, or a token whose email is not
// verified. An explicitly bad token never resolves here; that is an error.
type ClientUnverified struct{}

func (ClientUser) isClient()         {}
func (ClientUnregistered) isClient() {}
func (ClientUnverified) isClient()   {}

func (ClientUser) State() string         { return "user" }
func (ClientUnregistered) State() string { return "unregistered" }
func (ClientUnverified) State() string   { return "unverified" }
