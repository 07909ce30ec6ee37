package models

import (
	"github.com/sefazor/taskflow-client/pkg/api"
)

// Session is the client-local auth state: the backend token plus the user
// it was issued for.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}
