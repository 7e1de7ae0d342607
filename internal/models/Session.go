package models

// Session is resolved once per request from the session cookies.
type Session struct {
	Admin    bool
	Username string
}

func (s Session) IsUser() bool {
	return s.Username != ""
}
