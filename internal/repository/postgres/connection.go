package postgres

import (
	"strings"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/repository"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// cgo-free sqlite driver for desktop deployments
	_ "modernc.org/sqlite"
)

// NewConnection opens the database named by databaseURL. Postgres URLs
// get the postgres driver; anything else is treated as a SQLite file
// path, which is what desktop installs run on.
func NewConnection(databaseURL string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = gormPostgres.Open(databaseURL)
	} else {
		dialector = gormSqlite.New(gormSqlite.Config{
			DSN:        databaseURL,
			DriverName: "sqlite",
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Team{},
		&domain.Player{},
		&domain.Game{},
		&domain.GamePlayer{},
		&domain.BracketSlot{},
		&domain.Operator{},
		&domain.OperatorSession{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Team:       NewTeamRepository(db),
		Player:     NewPlayerRepository(db),
		Game:       NewGameRepository(db),
		GamePlayer: NewGamePlayerRepository(db),
		Bracket:    NewBracketRepository(db),
		Operator:   NewOperatorRepository(db),
		Session:    NewSessionRepository(db),
	}
}
