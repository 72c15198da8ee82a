package skill

import "github.com/joemocode/cakewalk-skill/internal/birthday"

// Session is the transient per-conversation state. It lives for exactly one
// dispatch and acts as a cache over the attribute store; it is never
// persisted itself.
type Session struct {
	ID     string
	values map[string]any
}

// NewSession returns an empty session for the given conversation id.
func NewSession(id string) *Session {
	return &Session{ID: id, values: make(map[string]any)}
}

// Get reads a session value.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores a session value.
func (s *Session) Set(key string, v any) {
	s.values[key] = v
}

// Birthday decodes the cached birth date, if a complete one is present.
func (s *Session) Birthday() (birthday.Record, bool) {
	return birthday.FromAttributes(s.values)
}

// SetBirthday caches a birth date in the session.
func (s *Session) SetBirthday(rec birthday.Record) {
	for k, v := range rec.Attributes() {
		s.values[k] = v
	}
}
