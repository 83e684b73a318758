package auth

// Service is an optional allowlist gate. With no configured IDs the bot is
// open to everyone, matching the original deployment; setting ALLOWED_USERS
// restricts it to the listed Telegram accounts.
type Service struct {
	allowedUsers map[int64]struct{}
}

func New(allowed []int64) *Service {
	s := &Service{allowedUsers: make(map[int64]struct{}, len(allowed))}
	for _, id := range allowed {
		s.allowedUsers[id] = struct{}{}
	}
	return s
}

func (s *Service) Open() bool {
	return len(s.allowedUsers) == 0
}

func (s *Service) IsAllowed(userID int64) bool {
	if s.Open() {
		return true
	}
	_, ok := s.allowedUsers[userID]
	return ok
}
