package engine

import (
	"errors"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
)

var ErrNoTimeoutsRemaining = errors.New("no timeouts remaining")
var ErrUnsupportedCommand = errors.New("unsupported command")
var ErrInvalidTeam = errors.New("invalid team")

type CommandType string

const (
	CmdScore            CommandType = "Score"
	CmdFoul             CommandType = "Foul"
	CmdClockToggle      CommandType = "ClockToggle"
	CmdClockSet         CommandType = "ClockSet"
	CmdClockReset       CommandType = "ClockReset"
	CmdPeriod           CommandType = "Period"
	CmdPossessionToggle CommandType = "PossessionToggle"
	CmdTimeout          CommandType = "Timeout"
	CmdSwapTeams        CommandType = "SwapTeams"
	CmdElamActivate     CommandType = "ElamActivate"
	CmdElamDeactivate   CommandType = "ElamDeactivate"
	CmdEnd              CommandType = "End"
)

type PeriodDirection string

const (
	PeriodNext PeriodDirection = "next"
	PeriodPrev PeriodDirection = "prev"
)

type TimeoutAction string

const (
	TimeoutAdd      TimeoutAction = "add"
	TimeoutSubtract TimeoutAction = "subtract"
)

type Command struct {
	Type        CommandType
	Team        domain.TeamSide
	Points      int             // score delta, may be negative
	Count       int             // foul delta, may be negative
	Time        int             // ClockSet: new timeRemaining in seconds
	PauseClock  bool            // ClockSet: stop the clock after setting (ticks pass false)
	Direction   PeriodDirection // Period
	Timeout     TimeoutAction   // Timeout
	TargetScore *int            // ElamActivate: explicit target, nil derives max(score)+8
}

type EventType string

const (
	// EvtGameCompleted fires on the active -> completed edge only, so a
	// tournament bracket advancement runs at most once per game.
	EvtGameCompleted EventType = "GameCompleted"
)

type Event struct {
	Type         EventType
	WinnerTeamID uuid.UUID // uuid.Nil when the final score is tied
}

// Apply computes the next game state for a control command. It never
// mutates its input; every counter clamps at zero.
func Apply(g domain.Game, cmd Command) ([]Event, domain.Game, error) {
	next := g

	switch cmd.Type {
	case CmdScore:
		switch cmd.Team {
		case domain.SideHome:
			next.HomeScore = clamp(g.HomeScore + cmd.Points)
		case domain.SideAway:
			next.AwayScore = clamp(g.AwayScore + cmd.Points)
		default:
			return nil, g, ErrInvalidTeam
		}

		// Elam Ending: first score at or past the target ends a
		// tournament game and names the winner.
		if g.Status == domain.GameStatusActive && g.IsTournament && g.ElamEndingActive && g.TargetScore != nil {
			target := *g.TargetScore
			if next.HomeScore >= target || next.AwayScore >= target {
				next.Status = domain.GameStatusCompleted
				next.ClockRunning = false

				winner := g.AwayTeamID
				if next.HomeScore >= target {
					winner = g.HomeTeamID
				}
				return []Event{{Type: EvtGameCompleted, WinnerTeamID: winner}}, next, nil
			}
		}
		return nil, next, nil

	case CmdFoul:
		switch cmd.Team {
		case domain.SideHome:
			next.HomeFouls = clamp(g.HomeFouls + cmd.Count)
		case domain.SideAway:
			next.AwayFouls = clamp(g.AwayFouls + cmd.Count)
		default:
			return nil, g, ErrInvalidTeam
		}
		return nil, next, nil

	case CmdClockToggle:
		next.ClockRunning = !g.ClockRunning
		return nil, next, nil

	case CmdClockSet:
		next.TimeRemaining = clamp(cmd.Time)
		if cmd.PauseClock {
			next.ClockRunning = false
		}
		return nil, next, nil

	case CmdClockReset:
		next.TimeRemaining = domain.PeriodLengthSeconds
		next.ClockRunning = false
		return nil, next, nil

	case CmdPeriod:
		switch cmd.Direction {
		case PeriodNext:
			next.Period = g.Period + 1
			// Team fouls reset at every half/OT boundary.
			next.HomeFouls = 0
			next.AwayFouls = 0
		case PeriodPrev:
			if g.Period > 1 {
				next.Period = g.Period - 1
			}
		default:
			return nil, g, ErrUnsupportedCommand
		}
		return nil, next, nil

	case CmdPossessionToggle:
		next.Possession = otherSide(g.Possession)
		return nil, next, nil

	case CmdTimeout:
		var remaining *int
		switch cmd.Team {
		case domain.SideHome:
			remaining = &next.HomeTimeouts
		case domain.SideAway:
			remaining = &next.AwayTimeouts
		default:
			return nil, g, ErrInvalidTeam
		}
		switch cmd.Timeout {
		case TimeoutAdd:
			*remaining++
		case TimeoutSubtract:
			if *remaining <= 0 {
				return nil, g, ErrNoTimeoutsRemaining
			}
			*remaining--
		default:
			return nil, g, ErrUnsupportedCommand
		}
		return nil, next, nil

	case CmdSwapTeams:
		next.HomeTeamID, next.AwayTeamID = g.AwayTeamID, g.HomeTeamID
		next.HomeScore, next.AwayScore = g.AwayScore, g.HomeScore
		next.HomeFouls, next.AwayFouls = g.AwayFouls, g.HomeFouls
		next.HomeTimeouts, next.AwayTimeouts = g.AwayTimeouts, g.HomeTimeouts
		next.Possession = otherSide(g.Possession)
		return nil, next, nil

	case CmdElamActivate:
		target := max(g.HomeScore, g.AwayScore) + 8
		if cmd.TargetScore != nil {
			target = *cmd.TargetScore
		}
		next.ElamEndingActive = true
		next.TargetScore = &target
		next.ClockRunning = false
		return nil, next, nil

	case CmdElamDeactivate:
		next.ElamEndingActive = false
		next.TargetScore = nil
		next.ClockRunning = false
		return nil, next, nil

	case CmdEnd:
		next.Status = domain.GameStatusCompleted
		next.ClockRunning = false
		if g.Status == domain.GameStatusActive {
			return []Event{{Type: EvtGameCompleted, WinnerTeamID: winnerOf(next)}}, next, nil
		}
		return nil, next, nil

	default:
		return nil, g, ErrUnsupportedCommand
	}
}

// ClampStat applies a delta to a player stat counter, floored at zero.
func ClampStat(current, delta int) int {
	return clamp(current + delta)
}

// Bonus derives the foul-bonus indicator for a team from the opponent's
// foul count. Never stored.
func Bonus(opponentFouls int) string {
	switch {
	case opponentFouls >= 9:
		return "bonus+"
	case opponentFouls >= 6:
		return "bonus"
	default:
		return ""
	}
}

func winnerOf(g domain.Game) uuid.UUID {
	if g.HomeScore > g.AwayScore {
		return g.HomeTeamID
	}
	if g.AwayScore > g.HomeScore {
		return g.AwayTeamID
	}
	return uuid.Nil
}

func otherSide(s domain.TeamSide) domain.TeamSide {
	if s == domain.SideHome {
		return domain.SideAway
	}
	return domain.SideHome
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
