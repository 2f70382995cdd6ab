package model

type SessionStatus string

const (
	SessionAnonymous     SessionStatus = "anonymous"
	SessionAuthenticated SessionStatus = "authenticated"
)

// anonymous か authenticated(token) のどちらか
type SessionState struct {
	token string
}

func AnonymousSession() SessionState {
	return SessionState{}
}

func AuthenticatedSession(token string) SessionState {
	return SessionState{token: token}
}

func (s SessionState) Authenticated() bool {
	return s.token != ""
}

func (s SessionState) Token() string {
	return s.token
}

func (s SessionState) Status() SessionStatus {
	if s.Authenticated() {
		return SessionAuthenticated
	}
	return SessionAnonymous
}
