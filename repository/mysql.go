package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"go-splendor/config"
	"go-splendor/entities"
)

// DSN builds the driver connection string for cfg.
func DSN(cfg config.MySQLConfig) string {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Addr
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Loc = time.UTC
	return mc.FormatDSN()
}

func NewMySQL(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping %s: %w", cfg.Addr, err)
	}
	return db, nil
}

const createResultsTable = `CREATE TABLE IF NOT EXISTS game_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id VARCHAR(64) NOT NULL,
	winner_id VARCHAR(64) NOT NULL,
	winner_name VARCHAR(128) NOT NULL,
	turns INT NOT NULL,
	scores JSON NOT NULL,
	finished_at DATETIME(3) NOT NULL,
	INDEX idx_game_results_winner (winner_id)
)`

const insertResult = `INSERT INTO game_results
	(room_id, winner_id, winner_name, turns, scores, finished_at)
	VALUES (?, ?, ?, ?, ?, ?)`

// MySQLResultArchive stores one row per finished game.
type MySQLResultArchive struct {
	db *sql.DB
}

func NewMySQLResultArchive(db *sql.DB) *MySQLResultArchive {
	return &MySQLResultArchive{db: db}
}

func (a *MySQLResultArchive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, createResultsTable); err != nil {
		return fmt.Errorf("create game_results: %w", err)
	}
	return nil
}

func (a *MySQLResultArchive) SaveResult(ctx context.Context, result entities.GameResult) error {
	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	_, err = a.db.ExecContext(ctx, insertResult,
		result.RoomID,
		result.WinnerID,
		result.WinnerName,
		result.Turns,
		scores,
		time.UnixMilli(result.FinishedAt).UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert result for room %s: %w", result.RoomID, err)
	}
	return nil
}
