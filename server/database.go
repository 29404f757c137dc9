package main

import (
	"fmt"

	"github.com/ifo/sanic"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/dcampbell24/libgo"
)

// getDB opens the configured database. DATABASE_URL selects Postgres;
// without it a local SQLite file is used.
func getDB() (*gorm.DB, error) {
	gormLog := zapgorm2.New(log.Desugar())
	gormLog.LogLevel = gormlogger.Warn
	gormLog.SetAsDefault()
	config := &gorm.Config{Logger: gormLog}

	var db *gorm.DB
	var err error
	if dbURL := viper.GetString("DATABASE_URL"); dbURL != "" {
		db, err = gorm.Open(postgres.Open(dbURL), config)
	} else {
		db, err = gorm.Open(sqlite.Open(viper.GetString("DATABASE_PATH")), config)
	}
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %v", err)
	}

	return db, nil
}

// createGame stores a new game and returns its slug.
func createGame(db *gorm.DB, size int, komi float64, userID *int64) (string, error) {
	if _, err := libgo.NewBoard(size); err != nil {
		return "", err
	}
	if komi == 0 {
		komi = libgo.ChineseKomi
	}

	// Game Slug
	worker := sanic.NewWorker7()
	id := worker.NextID()
	slug := worker.IDString(id)

	game := Game{
		Slug:   slug,
		Size:   size,
		Komi:   komi,
		UserID: userID,
	}

	return slug, db.Create(&game).Error
}

func getGameID(db *gorm.DB, slug string) (int64, error) {
	var game Game
	if err := db.Where("slug = ?", slug).First(&game).Error; err != nil {
		return 0, err
	}
	return game.ID, nil
}

func insertMove(db *gorm.DB, gameID int64, number int, move libgo.Move) error {
	row := Move{
		GameID: gameID,
		Number: number,
		Player: move.Player.String(),
	}
	if !move.IsPass() {
		row.Vertex = move.Vertex.String()
	}
	return db.Create(&row).Error
}

func deleteLastMove(db *gorm.DB, gameID int64) error {
	var last Move
	if err := db.Where("game_id = ?", gameID).Order("number desc").First(&last).Error; err != nil {
		return err
	}
	return db.Delete(&last).Error
}

func updateGameStatus(db *gorm.DB, slug, status string) error {
	result := db.Model(&Game{}).Where("slug = ?", slug).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// getGame loads a stored game and replays its moves, returning the row and
// the reconstructed engine state.
func getGame(db *gorm.DB, slug string) (*Game, *libgo.Game, error) {
	var row Game
	if err := db.Where("slug = ?", slug).First(&row).Error; err != nil {
		return nil, nil, err
	}
	if err := db.Where("game_id = ?", row.ID).Order("number").Find(&row.Moves).Error; err != nil {
		return nil, nil, err
	}

	game, err := libgo.NewGameWithSize(row.Size)
	if err != nil {
		return nil, nil, err
	}
	game.Komi = row.Komi

	for _, m := range row.Moves {
		move, err := parseStoredMove(m)
		if err != nil {
			return nil, nil, err
		}
		if err := game.Play(move); err != nil {
			return nil, nil, fmt.Errorf("replaying move %d (%s): %v", m.Number, move, err)
		}
	}

	return &row, game, nil
}

func parseStoredMove(m Move) (libgo.Move, error) {
	player, err := libgo.ParsePlayer(m.Player)
	if err != nil {
		return libgo.Move{}, err
	}
	if m.Vertex == "" {
		return libgo.Pass(player), nil
	}
	vertex, err := libgo.ParseVertex(m.Vertex)
	if err != nil {
		return libgo.Move{}, err
	}
	return libgo.PlayAt(player, vertex), nil
}
