package models

// Session is the auth response persisted verbatim for a chat. It is the
// only durable piece of client-side state besides the sync journal.
type Session struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	ProfileID int64  `json:"profileId"`
	Token     string `json:"token"`
}

func (s *Session) IsClient() bool {
	return s != nil && s.Role == RoleClient
}

func (s *Session) IsTrainer() bool {
	return s != nil && s.Role == RoleTrainer
}
