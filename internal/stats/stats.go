// Package stats derives standings and player statistics by folding over
// completed games. Callers pick the game pool (league or tournament);
// the two pools never mix.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
)

type PlayerLine struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Name        string    `json:"name"`
	Number      *int      `json:"number"`
	TotalPoints int       `json:"totalPoints"`
	TotalFouls  int       `json:"totalFouls"`
	GamesPlayed int       `json:"gamesPlayed"`
	AvgPoints   string    `json:"avgPoints"`
}

// PlayerTotals folds per-game box scores into season lines, keyed by the
// roster player. Mid-game substitutes (no linked player) and players
// marked missing contribute nothing.
func PlayerTotals(gamePlayers []*domain.GamePlayer) []PlayerLine {
	byPlayer := make(map[uuid.UUID]*PlayerLine)

	for _, gp := range gamePlayers {
		if gp.LinkedPlayerID == nil || gp.Missing {
			continue
		}

		line, ok := byPlayer[*gp.LinkedPlayerID]
		if !ok {
			line = &PlayerLine{
				PlayerID: *gp.LinkedPlayerID,
				Name:     gp.Name,
				Number:   gp.Number,
			}
			byPlayer[*gp.LinkedPlayerID] = line
		}
		line.TotalPoints += gp.Points
		line.TotalFouls += gp.Fouls
		line.GamesPlayed++
	}

	lines := make([]PlayerLine, 0, len(byPlayer))
	for _, line := range byPlayer {
		line.AvgPoints = average(line.TotalPoints, line.GamesPlayed)
		lines = append(lines, *line)
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].TotalPoints != lines[j].TotalPoints {
			return lines[i].TotalPoints > lines[j].TotalPoints
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

type TeamRow struct {
	TeamID        uuid.UUID `json:"teamId"`
	TeamName      string    `json:"teamName"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	PointsFor     int       `json:"pointsFor"`
	PointsAgainst int       `json:"pointsAgainst"`
	GamesPlayed   int       `json:"gamesPlayed"`
	WinPct        string    `json:"winPct"`
	PointDiff     int       `json:"pointDiff"`
	PPG           string    `json:"ppg"`
	PAG           string    `json:"pag"`
	Rank          int       `json:"rank"`
}

// Standings folds completed games into ranked team rows. Exact ties
// count toward neither side. The one canonical ordering is win
// percentage, then point differential, then team name; teams with equal
// win percentage share a rank number and the next distinct rank skips.
func Standings(teams []*domain.Team, games []*domain.Game) []TeamRow {
	byTeam := make(map[uuid.UUID]*TeamRow, len(teams))
	for _, team := range teams {
		byTeam[team.ID] = &TeamRow{TeamID: team.ID, TeamName: team.Name}
	}

	for _, g := range games {
		home, away := byTeam[g.HomeTeamID], byTeam[g.AwayTeamID]
		if home == nil || away == nil {
			continue
		}

		home.GamesPlayed++
		away.GamesPlayed++
		home.PointsFor += g.HomeScore
		home.PointsAgainst += g.AwayScore
		away.PointsFor += g.AwayScore
		away.PointsAgainst += g.HomeScore

		switch {
		case g.HomeScore > g.AwayScore:
			home.Wins++
			away.Losses++
		case g.AwayScore > g.HomeScore:
			away.Wins++
			home.Losses++
		}
	}

	rows := make([]TeamRow, 0, len(byTeam))
	for _, row := range byTeam {
		row.WinPct = winPct(row.Wins, row.GamesPlayed)
		row.PointDiff = row.PointsFor - row.PointsAgainst
		row.PPG = average(row.PointsFor, row.GamesPlayed)
		row.PAG = average(row.PointsAgainst, row.GamesPlayed)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		pi, pj := pct(rows[i]), pct(rows[j])
		if pi != pj {
			return pi > pj
		}
		if rows[i].PointDiff != rows[j].PointDiff {
			return rows[i].PointDiff > rows[j].PointDiff
		}
		return rows[i].TeamName < rows[j].TeamName
	})

	for i := range rows {
		if i > 0 && pct(rows[i]) == pct(rows[i-1]) {
			rows[i].Rank = rows[i-1].Rank
		} else {
			rows[i].Rank = i + 1
		}
	}
	return rows
}

// pct rounds to three decimals so rank ties match the displayed value.
func pct(row TeamRow) float64 {
	if row.GamesPlayed == 0 {
		return 0
	}
	return math.Round(float64(row.Wins)/float64(row.GamesPlayed)*1000) / 1000
}

func winPct(wins, played int) string {
	if played == 0 {
		return ".000"
	}
	return fmt.Sprintf("%.3f", float64(wins)/float64(played))
}

func average(total, played int) string {
	if played == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(total)/float64(played))
}
