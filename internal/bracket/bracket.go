// Package bracket holds the pure seeding, validation and advancement
// rules for the 8-team single-elimination Gonzo Cup tree. Persistence is
// the caller's job.
package bracket

import (
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
)

// Seed builds the full 8/4/2 slot forest for two 4-team divisions.
// Quarterfinals pair within the division, 1v4 and 2v3; the east winners
// meet in the east semifinal and the divisions only cross in the final.
func Seed(east, west []uuid.UUID) ([]*domain.BracketSlot, error) {
	if len(east) != domain.TeamsPerDivision || len(west) != domain.TeamsPerDivision {
		return nil, domain.ErrDivisionSize
	}

	finalTop := newSlot(domain.RoundFinal, 0, nil, true)
	finalBottom := newSlot(domain.RoundFinal, 1, nil, false)

	semiEastTop := newSlot(domain.RoundSemifinal, 0, &finalTop.ID, true)
	semiEastBottom := newSlot(domain.RoundSemifinal, 1, &finalTop.ID, false)
	semiWestTop := newSlot(domain.RoundSemifinal, 2, &finalBottom.ID, true)
	semiWestBottom := newSlot(domain.RoundSemifinal, 3, &finalBottom.ID, false)

	slots := []*domain.BracketSlot{
		finalTop, finalBottom,
		semiEastTop, semiEastBottom,
		semiWestTop, semiWestBottom,
	}

	// Quarterfinal seeds in bracket order: E1vE4, E2vE3, W1vW4, W2vW3.
	seeds := []struct {
		team uuid.UUID
		next *uuid.UUID
	}{
		{east[0], &semiEastTop.ID},
		{east[3], &semiEastTop.ID},
		{east[1], &semiEastBottom.ID},
		{east[2], &semiEastBottom.ID},
		{west[0], &semiWestTop.ID},
		{west[3], &semiWestTop.ID},
		{west[1], &semiWestBottom.ID},
		{west[2], &semiWestBottom.ID},
	}

	for pos, s := range seeds {
		slot := newSlot(domain.RoundQuarterfinal, pos, s.next, pos%2 == 0)
		team := s.team
		slot.TeamID = &team
		slots = append(slots, slot)
	}

	return slots, nil
}

// Validate checks the structural invariant on every read: an empty
// bracket is fine, anything other than the exact 8/4/2 shape is not.
func Validate(slots []*domain.BracketSlot) error {
	if len(slots) == 0 {
		return nil
	}

	counts := map[int]int{}
	for _, s := range slots {
		counts[s.Round]++
	}

	if len(slots) != domain.QuarterfinalSlots+domain.SemifinalSlots+domain.FinalSlots ||
		counts[domain.RoundQuarterfinal] != domain.QuarterfinalSlots ||
		counts[domain.RoundSemifinal] != domain.SemifinalSlots ||
		counts[domain.RoundFinal] != domain.FinalSlots {
		return domain.ErrMalformedBracket
	}
	return nil
}

// MatchPair returns the top and bottom slot of the match at the given
// round and match position (match N occupies slot positions 2N and 2N+1).
func MatchPair(slots []*domain.BracketSlot, round, match int) (top, bottom *domain.BracketSlot, err error) {
	for _, s := range slots {
		if s.Round != round {
			continue
		}
		switch s.Position {
		case match * 2:
			top = s
		case match*2 + 1:
			bottom = s
		}
	}
	if top == nil || bottom == nil {
		return nil, nil, domain.ErrSlotNotFound
	}
	return top, bottom, nil
}

// Advance binds the winner of a completed game into the slot fed by the
// game's slot. Single-level only: each completion unlocks one pairing.
// Returns the updated next slot, or false when the game is not on the
// bracket or its slot has no successor (the final).
func Advance(slots []*domain.BracketSlot, gameID, winnerTeamID uuid.UUID) (*domain.BracketSlot, bool) {
	var source *domain.BracketSlot
	for _, s := range slots {
		if s.GameID != nil && *s.GameID == gameID {
			source = s
			break
		}
	}
	if source == nil || source.NextSlotID == nil {
		return nil, false
	}

	for _, s := range slots {
		if s.ID == *source.NextSlotID {
			winner := winnerTeamID
			s.TeamID = &winner
			return s, true
		}
	}
	return nil, false
}

// Winner picks the winning team of a completed game; ties have none.
func Winner(g *domain.Game) (uuid.UUID, bool) {
	if g.HomeScore > g.AwayScore {
		return g.HomeTeamID, true
	}
	if g.AwayScore > g.HomeScore {
		return g.AwayTeamID, true
	}
	return uuid.Nil, false
}

func newSlot(round, position int, next *uuid.UUID, top bool) *domain.BracketSlot {
	return &domain.BracketSlot{
		ID:         uuid.New(),
		Round:      round,
		Position:   position,
		NextSlotID: next,
		IsTopSlot:  top,
	}
}
