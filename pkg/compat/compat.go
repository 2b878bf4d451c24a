// Package compat computes rule-based compatibility between two profiles.
// Scoring is a weighted sum over five factors whose weights total 100, so
// the result is already on a 0-100 scale. Scoring self against candidate is
// deliberately asymmetric: the shared-interest factor is normalized by the
// requester's own interest-list length.
package compat

import (
	"fmt"
	"math"
	"strings"

	"charmly/internal/domain"
	"charmly/internal/models"
)

// Factor weights. They must sum to 100.
const (
	countryWeight  = 30
	heightWeight   = 20
	interestWeight = 25
	styleWeight    = 15
	goalWeight     = 10
)

// Height difference tiers in cm.
const (
	heightTierClose = 10
	heightTierNear  = 20
	heightTierFar   = 30
)

// Score returns an integer compatibility score in [0,100] for candidate as
// seen by self. It is a total function: any two well-formed users yield a
// result, there are no error paths and no I/O.
func Score(self, candidate *models.User) int {
	raw := float64(countryScore(self, candidate) + heightScore(self, candidate) + styleScore(self, candidate) + goalScore(self, candidate))
	raw += interestScore(self, candidate)
	return int(math.Round(raw))
}

func countryScore(self, candidate *models.User) int {
	if self.Country == candidate.Country {
		return countryWeight
	}
	return 0
}

func heightScore(self, candidate *models.User) int {
	d := self.HeightCm - candidate.HeightCm
	if d < 0 {
		d = -d
	}
	switch {
	case d <= heightTierClose:
		return heightWeight
	case d <= heightTierNear:
		return 15
	case d <= heightTierFar:
		return 10
	default:
		return 0
	}
}

func interestScore(self, candidate *models.User) float64 {
	shared := SharedInterests(self, candidate)
	total := len(self.Preferences.Interests)
	if total < 1 {
		total = 1
	}
	score := float64(len(shared)) / float64(total) * interestWeight
	return math.Min(interestWeight, score)
}

func styleScore(self, candidate *models.User) int {
	a := self.Preferences.CommunicationStyle
	b := candidate.Preferences.CommunicationStyle
	if a == b {
		return styleWeight
	}
	if (a == domain.StyleFriendly && b == domain.StyleCasual) || (a == domain.StyleCasual && b == domain.StyleFriendly) {
		return 10
	}
	return 0
}

func goalScore(self, candidate *models.User) int {
	if self.Preferences.RelationshipGoal == candidate.Preferences.RelationshipGoal {
		return goalWeight
	}
	return 0
}

// SharedInterests returns the interests both users share, in the order they
// appear in self's list.
func SharedInterests(self, candidate *models.User) []string {
	theirs := make(map[string]struct{}, len(candidate.Preferences.Interests))
	for _, in := range candidate.Preferences.Interests {
		theirs[in] = struct{}{}
	}
	shared := make([]string, 0, len(self.Preferences.Interests))
	for _, in := range self.Preferences.Interests {
		if _, ok := theirs[in]; ok {
			shared = append(shared, in)
		}
	}
	return shared
}

// Reasons builds the human-readable explanations for a pairing, in a fixed
// order. Only factors that fully apply produce a reason; the partial
// friendly/casual style match contributes to the score but not here.
func Reasons(self, candidate *models.User, shared []string) []string {
	var reasons []string
	if self.Country == candidate.Country {
		reasons = append(reasons, fmt.Sprintf("Both from %s", self.Country))
	}
	if len(shared) > 0 {
		top := shared
		if len(top) > 3 {
			top = top[:3]
		}
		reasons = append(reasons, fmt.Sprintf("Shared interests: %s", strings.Join(top, ", ")))
	}
	if self.Preferences.CommunicationStyle == candidate.Preferences.CommunicationStyle {
		reasons = append(reasons, fmt.Sprintf("Similar communication style: %s", self.Preferences.CommunicationStyle))
	}
	if self.Preferences.RelationshipGoal == candidate.Preferences.RelationshipGoal {
		reasons = append(reasons, fmt.Sprintf("Same relationship goals: %s", self.Preferences.RelationshipGoal))
	}
	return reasons
}
