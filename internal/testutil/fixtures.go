package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OperatorBuilder creates test operators with a builder pattern
type OperatorBuilder struct {
	displayName string
	password    string
}

// NewOperatorBuilder creates a new OperatorBuilder with default values
func NewOperatorBuilder() *OperatorBuilder {
	return &OperatorBuilder{
		displayName: fmt.Sprintf("operator_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *OperatorBuilder) WithDisplayName(name string) *OperatorBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *OperatorBuilder) WithPassword(password string) *OperatorBuilder {
	b.password = password
	return b
}

// Build creates the operator in the database and returns it with the raw password
func (b *OperatorBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Operator, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	operator := &domain.Operator{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(operator).Error; err != nil {
		t.Fatalf("failed to create operator: %v", err)
	}

	return operator, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Operator struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"operator"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates an operator via the API and returns it with an access token
func (b *OperatorBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.Operator, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register operator: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	operatorID, _ := uuid.Parse(authResp.Operator.ID)
	operator := &domain.Operator{
		ID:          operatorID,
		DisplayName: authResp.Operator.DisplayName,
	}

	return operator, authResp.AccessToken
}

// TeamBuilder creates test teams with a builder pattern
type TeamBuilder struct {
	name        string
	playerNames []string
}

// NewTeamBuilder creates a new TeamBuilder with default values
func NewTeamBuilder() *TeamBuilder {
	return &TeamBuilder{
		name: fmt.Sprintf("Team %s", uuid.New().String()[:8]),
	}
}

// WithName sets the team name
func (b *TeamBuilder) WithName(name string) *TeamBuilder {
	b.name = name
	return b
}

// WithPlayers adds roster players by name
func (b *TeamBuilder) WithPlayers(names ...string) *TeamBuilder {
	b.playerNames = append(b.playerNames, names...)
	return b
}

// Build creates the team and its roster in the database
func (b *TeamBuilder) Build(t *testing.T, db *gorm.DB) *domain.Team {
	t.Helper()

	team := &domain.Team{
		ID:   uuid.New(),
		Name: b.name,
	}
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	for i, name := range b.playerNames {
		number := i + 1
		player := &domain.Player{
			ID:     uuid.New(),
			TeamID: team.ID,
			Name:   name,
			Number: &number,
		}
		if err := db.Create(player).Error; err != nil {
			t.Fatalf("failed to create player: %v", err)
		}
		team.Players = append(team.Players, *player)
	}

	return team
}

// GameBuilder creates test games with a builder pattern
type GameBuilder struct {
	homeTeam     *domain.Team
	awayTeam     *domain.Team
	homeScore    int
	awayScore    int
	status       domain.GameStatus
	isTournament bool
}

// NewGameBuilder creates a new GameBuilder with default values
func NewGameBuilder() *GameBuilder {
	return &GameBuilder{
		status: domain.GameStatusActive,
	}
}

// WithTeams sets both teams
func (b *GameBuilder) WithTeams(home, away *domain.Team) *GameBuilder {
	b.homeTeam = home
	b.awayTeam = away
	return b
}

// WithScore sets the score
func (b *GameBuilder) WithScore(home, away int) *GameBuilder {
	b.homeScore = home
	b.awayScore = away
	return b
}

// Completed marks the game as finished
func (b *GameBuilder) Completed() *GameBuilder {
	b.status = domain.GameStatusCompleted
	return b
}

// Tournament marks the game as a bracket game
func (b *GameBuilder) Tournament() *GameBuilder {
	b.isTournament = true
	return b
}

// Build creates the game in the database
func (b *GameBuilder) Build(t *testing.T, db *gorm.DB) *domain.Game {
	t.Helper()

	if b.homeTeam == nil {
		b.homeTeam = NewTeamBuilder().Build(t, db)
	}
	if b.awayTeam == nil {
		b.awayTeam = NewTeamBuilder().Build(t, db)
	}

	game := &domain.Game{
		ID:            uuid.New(),
		HomeTeamID:    b.homeTeam.ID,
		AwayTeamID:    b.awayTeam.ID,
		HomeScore:     b.homeScore,
		AwayScore:     b.awayScore,
		Period:        1,
		TimeRemaining: domain.PeriodLengthSeconds,
		Possession:    domain.SideHome,
		HomeTimeouts:  3,
		AwayTimeouts:  3,
		Status:        b.status,
		IsTournament:  b.isTournament,
	}
	if err := db.Create(game).Error; err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	return game
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
