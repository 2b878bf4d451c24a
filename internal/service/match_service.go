package service

import (
	"errors"
	"sort"
	"time"

	"charmly/config"
	"charmly/internal/domain"
	"charmly/internal/models"
	"charmly/pkg/compat"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrRequestNotFound  = errors.New("match request not found")
	ErrRequestExists    = errors.New("match request already exists")
	ErrSelfMatch        = errors.New("cannot send a match request to yourself")
	ErrNotRecipient     = errors.New("only the recipient can respond to this request")
	ErrAlreadyResponded = errors.New("match request already responded to")
	ErrInvalidDecision  = errors.New("decision must be accepted or rejected")
)

// MatchStore is the persistence surface for match requests.
type MatchStore interface {
	Create(m *models.MatchRequest) error
	GetByID(id uint) (*models.MatchRequest, error)
	GetByPair(a, b uint) (*models.MatchRequest, error)
	Update(m *models.MatchRequest) error
	ListByUserID(userID uint, status string) ([]models.MatchRequest, error)
}

// MatchResult is the ephemeral outcome of scoring one candidate for a
// requester. Never persisted; recomputed on every discovery call.
type MatchResult struct {
	User               *models.User `json:"user"`
	CompatibilityScore int          `json:"compatibility_score"`
	SharedInterests    []string     `json:"shared_interests"`
	MatchReasons       []string     `json:"match_reasons"`
}

type MatchService struct {
	users    UserStore
	matches  MatchStore
	notifier *NotificationService
	policy   config.MatchConfig
}

func NewMatchService(users UserStore, matches MatchStore, notifier *NotificationService, policy config.MatchConfig) *MatchService {
	if policy.DefaultLimit <= 0 {
		policy.DefaultLimit = domain.DefaultMatchLimit
	}
	if policy.MinCompatibility <= 0 {
		policy.MinCompatibility = domain.MinCompatibility
	}
	if policy.Overfetch <= 0 {
		policy.Overfetch = domain.CandidateOverfetch
	}
	return &MatchService{users: users, matches: matches, notifier: notifier, policy: policy}
}

// FindMatches produces the ranked candidate list for a requester. An empty
// list is a valid outcome, not an error.
func (s *MatchService) FindMatches(requesterID uint, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = s.policy.DefaultLimit
	}
	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Over-fetch to compensate for the compatibility cutoff below.
	pool, err := s.users.ListCandidates(
		requesterID,
		requester.Preferences.HeightMin,
		requester.Preferences.HeightMax,
		limit*s.policy.Overfetch,
	)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, 0, len(pool))
	for i := range pool {
		candidate := &pool[i]
		score := compat.Score(requester, candidate)
		if score < s.policy.MinCompatibility {
			continue
		}
		shared := compat.SharedInterests(requester, candidate)
		results = append(results, MatchResult{
			User:               candidate,
			CompatibilityScore: score,
			SharedInterests:    shared,
			MatchReasons:       compat.Reasons(requester, candidate, shared),
		})
	}
	// Stable so equal scores keep store order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CompatibilityScore > results[j].CompatibilityScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CreateRequest opens a pending match request from requester to target,
// snapshotting the compatibility score and shared interests as of now.
func (s *MatchService) CreateRequest(requesterID, targetID uint) (*models.MatchRequest, error) {
	if requesterID == targetID {
		return nil, ErrSelfMatch
	}
	_, err := s.matches.GetByPair(requesterID, targetID)
	if err == nil {
		return nil, ErrRequestExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	requester, err := s.users.GetByID(requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	target, err := s.users.GetByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	m := &models.MatchRequest{
		User1ID:            requesterID,
		User2ID:            targetID,
		CompatibilityScore: compat.Score(requester, target),
		SharedInterests:    compat.SharedInterests(requester, target),
		Status:             domain.MatchStatusPending,
	}
	if err := s.matches.Create(m); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		_ = s.notifier.NotifyMatchRequest(targetID, requester.Name, m.ID)
	}
	return m, nil
}

// Respond transitions a pending request to accepted or rejected. Only the
// designated recipient may respond, and only once.
func (s *MatchService) Respond(requestID, responderID uint, decision string) (*models.MatchRequest, error) {
	if decision != domain.MatchStatusAccepted && decision != domain.MatchStatusRejected {
		return nil, ErrInvalidDecision
	}
	m, err := s.matches.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if m.User2ID != responderID {
		return nil, ErrNotRecipient
	}
	if !m.IsPending() {
		return nil, ErrAlreadyResponded
	}
	now := time.Now()
	m.Status = decision
	m.RespondedAt = &now
	if err := s.matches.Update(m); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		responder, rerr := s.users.GetByID(responderID)
		name := "Someone"
		if rerr == nil {
			name = responder.Name
		}
		_ = s.notifier.NotifyMatchResponse(m.User1ID, name, decision, m.ID)
	}
	return m, nil
}

// MatchRequestDetail is a stored request together with the other party's
// profile, for list responses.
type MatchRequestDetail struct {
	models.MatchRequest
	Counterpart *models.User `json:"counterpart,omitempty"`
}

// ListForUser returns requests the user is party to, newest first, optionally
// filtered by status. Each entry carries the counterpart's profile.
func (s *MatchService) ListForUser(userID uint, status string) ([]MatchRequestDetail, error) {
	list, err := s.matches.ListByUserID(userID, status)
	if err != nil {
		return nil, err
	}
	out := make([]MatchRequestDetail, 0, len(list))
	for i := range list {
		d := MatchRequestDetail{MatchRequest: list[i]}
		counterpart := list[i].User1
		if list[i].User1ID == userID {
			counterpart = list[i].User2
		}
		if counterpart.ID != 0 {
			d.Counterpart = &counterpart
		}
		out = append(out, d)
	}
	return out, nil
}
