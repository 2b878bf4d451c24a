package service

import (
	"testing"

	"charmly/config"
	"charmly/internal/domain"
	"charmly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(store *fakeUserStore, name, country string, height int, interests []string, style, goal string) *models.User {
	return store.add(&models.User{
		Name:     name,
		Email:    name + "@test.local",
		Country:  country,
		HeightCm: height,
		Preferences: models.Preferences{
			Interests:          interests,
			CommunicationStyle: style,
			RelationshipGoal:   goal,
			HeightMin:          100,
			HeightMax:          250,
		},
	})
}

func newMatchFixture(t *testing.T) (*MatchService, *fakeUserStore, *fakeMatchStore, *fakeNotificationStore) {
	t.Helper()
	users := newFakeUserStore()
	matches := &fakeMatchStore{users: users}
	notes := &fakeNotificationStore{}
	notifier := NewNotificationService(notes, nil)
	svc := NewMatchService(users, matches, notifier, config.MatchConfig{})
	return svc, users, matches, notes
}

func TestFindMatchesRanksAndFilters(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	me := seedUser(users, "alice", "Kenya", 170, []string{"Music", "Art"}, "friendly", "friendship")
	twin := seedUser(users, "twin", "Kenya", 170, []string{"Music", "Art"}, "friendly", "friendship")
	good := seedUser(users, "good", "Kenya", 175, []string{"Art", "Sports"}, "casual", "friendship")
	seedUser(users, "far", "Japan", 220, []string{"Chess"}, "formal", "networking")
	charm := users.add(&models.User{Name: "Charm", Email: "charm@test.local", Country: "Kenya", HeightCm: 170, IsCompanion: true})

	results, err := svc.FindMatches(me.ID, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// ranked best first
	assert.Equal(t, twin.ID, results[0].User.ID)
	assert.Equal(t, 100, results[0].CompatibilityScore)
	assert.Equal(t, good.ID, results[1].User.ID)
	assert.Equal(t, 83, results[1].CompatibilityScore)
	assert.Equal(t, []string{"Art"}, results[1].SharedInterests)

	for _, r := range results {
		assert.NotEqual(t, me.ID, r.User.ID)
		assert.NotEqual(t, charm.ID, r.User.ID)
		assert.GreaterOrEqual(t, r.CompatibilityScore, domain.MinCompatibility)
	}
}

func TestFindMatchesRespectsLimit(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	me := seedUser(users, "alice", "Kenya", 170, []string{"Music"}, "friendly", "friendship")
	for i := 0; i < 6; i++ {
		seedUser(users, "clone", "Kenya", 170, []string{"Music"}, "friendly", "friendship")
	}

	results, err := svc.FindMatches(me.ID, 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].CompatibilityScore, results[i].CompatibilityScore)
	}
}

func TestFindMatchesEmptyPool(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	me := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")

	results, err := svc.FindMatches(me.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindMatchesUnknownRequester(t *testing.T) {
	svc, _, _, _ := newMatchFixture(t)
	_, err := svc.FindMatches(999, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateRequestSnapshots(t *testing.T) {
	svc, users, matches, notes := newMatchFixture(t)
	me := seedUser(users, "alice", "Kenya", 170, []string{"Music", "Art"}, "friendly", "friendship")
	other := seedUser(users, "bob", "Kenya", 175, []string{"Art", "Sports"}, "casual", "friendship")

	m, err := svc.CreateRequest(me.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, me.ID, m.User1ID)
	assert.Equal(t, other.ID, m.User2ID)
	assert.Equal(t, 83, m.CompatibilityScore)
	assert.Equal(t, models.StringList{"Art"}, m.SharedInterests)
	assert.Equal(t, domain.MatchStatusPending, m.Status)
	assert.Nil(t, m.RespondedAt)

	// later profile edits must not touch the stored snapshot
	other.Preferences.Interests = models.StringList{"Chess"}
	require.NoError(t, users.Update(other))
	stored, err := matches.GetByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 83, stored.CompatibilityScore)
	assert.Equal(t, models.StringList{"Art"}, stored.SharedInterests)

	// the recipient was notified
	require.Len(t, notes.notes, 1)
	assert.Equal(t, other.ID, notes.notes[0].UserID)
	assert.Equal(t, "MATCH_REQUEST", notes.notes[0].Type)
}

func TestCreateRequestDuplicatePairEitherOrder(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	b := seedUser(users, "bob", "Kenya", 170, nil, "friendly", "friendship")

	_, err := svc.CreateRequest(a.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.CreateRequest(a.ID, b.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
	_, err = svc.CreateRequest(b.ID, a.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
}

func TestCreateRequestSelf(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	_, err := svc.CreateRequest(a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfMatch)
}

func TestCreateRequestUnknownTarget(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	_, err := svc.CreateRequest(a.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRespondLifecycle(t *testing.T) {
	svc, users, _, notes := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	b := seedUser(users, "bob", "Kenya", 170, nil, "friendly", "friendship")
	m, err := svc.CreateRequest(a.ID, b.ID)
	require.NoError(t, err)

	updated, err := svc.Respond(m.ID, b.ID, domain.MatchStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusAccepted, updated.Status)
	require.NotNil(t, updated.RespondedAt)

	// accepted is terminal
	_, err = svc.Respond(m.ID, b.ID, domain.MatchStatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyResponded)

	// request + response notifications
	require.Len(t, notes.notes, 2)
	assert.Equal(t, a.ID, notes.notes[1].UserID)
	assert.Equal(t, "MATCH_RESPONSE", notes.notes[1].Type)
}

func TestRespondOnlyRecipient(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	b := seedUser(users, "bob", "Kenya", 170, nil, "friendly", "friendship")
	c := seedUser(users, "carol", "Kenya", 170, nil, "friendly", "friendship")
	m, err := svc.CreateRequest(a.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.Respond(m.ID, a.ID, domain.MatchStatusAccepted)
	assert.ErrorIs(t, err, ErrNotRecipient)
	_, err = svc.Respond(m.ID, c.ID, domain.MatchStatusAccepted)
	assert.ErrorIs(t, err, ErrNotRecipient)

	// still pending afterwards
	stored, err := svc.ListForUser(b.ID, domain.MatchStatusPending)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, m.ID, stored[0].ID)
}

func TestRespondUnknownRequest(t *testing.T) {
	svc, _, _, _ := newMatchFixture(t)
	_, err := svc.Respond(999, 1, domain.MatchStatusAccepted)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRespondInvalidDecision(t *testing.T) {
	svc, _, _, _ := newMatchFixture(t)
	_, err := svc.Respond(1, 1, "maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestListForUserEmbedsCounterpart(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	b := seedUser(users, "bob", "Kenya", 170, nil, "friendly", "friendship")
	_, err := svc.CreateRequest(a.ID, b.ID)
	require.NoError(t, err)

	// each side sees the other party's profile
	fromA, err := svc.ListForUser(a.ID, "")
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	require.NotNil(t, fromA[0].Counterpart)
	assert.Equal(t, b.ID, fromA[0].Counterpart.ID)
	assert.Equal(t, "bob", fromA[0].Counterpart.Name)

	fromB, err := svc.ListForUser(b.ID, "")
	require.NoError(t, err)
	require.Len(t, fromB, 1)
	require.NotNil(t, fromB[0].Counterpart)
	assert.Equal(t, "alice", fromB[0].Counterpart.Name)
}

func TestListForUserFiltersByStatus(t *testing.T) {
	svc, users, _, _ := newMatchFixture(t)
	a := seedUser(users, "alice", "Kenya", 170, nil, "friendly", "friendship")
	b := seedUser(users, "bob", "Kenya", 170, nil, "friendly", "friendship")
	c := seedUser(users, "carol", "Kenya", 170, nil, "friendly", "friendship")

	m1, err := svc.CreateRequest(a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.CreateRequest(c.ID, a.ID)
	require.NoError(t, err)
	_, err = svc.Respond(m1.ID, b.ID, domain.MatchStatusRejected)
	require.NoError(t, err)

	all, err := svc.ListForUser(a.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListForUser(a.ID, domain.MatchStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, c.ID, pending[0].User1ID)
}
