package service

import (
	"charmly/internal/models"

	"gorm.io/gorm"
)

// In-memory stores backing the service tests. They honor the same contracts
// as the gorm repositories, including ErrRecordNotFound on misses.

type fakeUserStore struct {
	seq   uint
	order []uint
	users map[uint]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User)}
}

func (s *fakeUserStore) add(u *models.User) *models.User {
	s.seq++
	u.ID = s.seq
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
	return u
}

func (s *fakeUserStore) Create(u *models.User) error {
	s.add(u)
	return nil
}

func (s *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, id := range s.order {
		if s.users[id].Email == email {
			return s.users[id], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByGoogleID(googleID string) (*models.User, error) {
	for _, id := range s.order {
		u := s.users[id]
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Update(u *models.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) ListCandidates(excludeID uint, heightMin, heightMax, limit int) ([]models.User, error) {
	var out []models.User
	for _, id := range s.order {
		u := s.users[id]
		if u.ID == excludeID || u.IsCompanion {
			continue
		}
		if u.HeightCm < heightMin || u.HeightCm > heightMax {
			continue
		}
		out = append(out, *u)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakeMatchStore struct {
	seq   uint
	reqs  []*models.MatchRequest
	users *fakeUserStore // for the User1/User2 preloads in ListByUserID
}

func (s *fakeMatchStore) Create(m *models.MatchRequest) error {
	s.seq++
	m.ID = s.seq
	s.reqs = append(s.reqs, m)
	return nil
}

func (s *fakeMatchStore) GetByID(id uint) (*models.MatchRequest, error) {
	for _, m := range s.reqs {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMatchStore) GetByPair(a, b uint) (*models.MatchRequest, error) {
	for _, m := range s.reqs {
		if (m.User1ID == a && m.User2ID == b) || (m.User1ID == b && m.User2ID == a) {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMatchStore) Update(m *models.MatchRequest) error {
	for i, existing := range s.reqs {
		if existing.ID == m.ID {
			s.reqs[i] = m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeMatchStore) ListByUserID(userID uint, status string) ([]models.MatchRequest, error) {
	var out []models.MatchRequest
	for i := len(s.reqs) - 1; i >= 0; i-- {
		m := s.reqs[i]
		if m.User1ID != userID && m.User2ID != userID {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		cp := *m
		if s.users != nil {
			if u, ok := s.users.users[m.User1ID]; ok {
				cp.User1 = *u
			}
			if u, ok := s.users.users[m.User2ID]; ok {
				cp.User2 = *u
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

type fakeMessageStore struct {
	seq  uint
	msgs []*models.Message
}

func (s *fakeMessageStore) Create(m *models.Message) error {
	s.seq++
	m.ID = s.seq
	s.msgs = append(s.msgs, m)
	return nil
}

func (s *fakeMessageStore) conversation(userID, otherID uint) []*models.Message {
	var out []*models.Message
	for _, m := range s.msgs {
		if (m.SenderID == userID && m.ReceiverID == otherID) || (m.SenderID == otherID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	return out
}

func (s *fakeMessageStore) ListConversation(userID, otherID uint, limit, offset int) ([]models.Message, error) {
	conv := s.conversation(userID, otherID)
	// page from the newest end, returned in chronological order
	end := len(conv) - offset
	if end < 0 {
		end = 0
	}
	start := end - limit
	if start < 0 {
		start = 0
	}
	out := make([]models.Message, 0, end-start)
	for _, m := range conv[start:end] {
		out = append(out, *m)
	}
	return out, nil
}

func (s *fakeMessageStore) RecentHistory(userID, otherID uint, n int) ([]models.Message, error) {
	conv := s.conversation(userID, otherID)
	if len(conv) > n {
		conv = conv[len(conv)-n:]
	}
	out := make([]models.Message, 0, len(conv))
	for _, m := range conv {
		out = append(out, *m)
	}
	return out, nil
}

func (s *fakeMessageStore) CountConversation(userID, otherID uint) (int64, error) {
	return int64(len(s.conversation(userID, otherID))), nil
}

func (s *fakeMessageStore) MarkRead(messageID, userID uint) (*models.Message, error) {
	for _, m := range s.msgs {
		if m.ID == messageID && m.ReceiverID == userID && !m.IsRead {
			m.IsRead = true
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMessageStore) CountUnread(userID uint) (int64, error) {
	var n int64
	for _, m := range s.msgs {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

type fakeNotificationStore struct {
	notes []*models.Notification
}

func (s *fakeNotificationStore) Create(n *models.Notification) error {
	s.notes = append(s.notes, n)
	return nil
}

type pushedEvent struct {
	userID  uint
	event   string
	payload interface{}
}

type fakePusher struct {
	events []pushedEvent
}

func (p *fakePusher) Push(userID uint, event string, payload interface{}) {
	p.events = append(p.events, pushedEvent{userID: userID, event: event, payload: payload})
}
