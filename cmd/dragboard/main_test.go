package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/dragboard/internal/config"
	"github.com/jask/dragboard/internal/database/repository"
)

func TestOpenBoardCreatesAndSeeds(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "board.db")

	db, err := openBoard(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	cols, err := repository.NewColumnRepo(db).List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cols)
}

func TestOpenBoardReturnsStartupErrors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg := config.Default()
	cfg.Database.Path = filepath.Join(blocker, "db", "board.db")

	db, err := openBoard(context.Background(), cfg)
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "mkdir db dir")
}

func TestSetupLoggingWritesToFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	})
	path := filepath.Join(t.TempDir(), "debug.log")

	closeLog, err := setupLogging(config.LogConfig{File: path})
	require.NoError(t, err)
	log.Printf("drag start")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "drag start")
}
