package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/dragboard/internal/config"
	"github.com/jask/dragboard/internal/database"
	"github.com/jask/dragboard/internal/database/repository"
	"github.com/jask/dragboard/internal/prefs"
	"github.com/jask/dragboard/internal/service"
	"github.com/jask/dragboard/internal/testdata"
	"github.com/jask/dragboard/internal/tui"
)

func main() {
	if len(os.Args) > 1 {
		if err := runCommand(os.Args[1]); err != nil {
			log.Fatalf("%s: %v", os.Args[1], err)
		}
		return
	}

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openBoard(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	view, err := prefs.LoadView()
	if err != nil {
		log.Printf("warn: ignoring saved view: %v", err)
	}

	sched := tui.NewScheduler()
	app, err := tui.New(ctx, cfg, service.NewBoardService(db), tui.WithScheduler(sched), tui.WithView(view))
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	// The UI owns the terminal from here on.
	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer closeLog()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	sched.Bind(p.Send)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
	if err := prefs.SaveView(app.ScrollOffsets()); err != nil {
		log.Printf("save view: %v", err)
	}
}

// openBoard prepares the database directory, schema and default columns.
func openBoard(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

// setupLogging routes the standard logger to cfg.File, or discards it when
// no file is configured. The returned func releases the file.
func setupLogging(cfg config.LogConfig) (func(), error) {
	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(cfg.File, "dragboard")
	if err != nil {
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

func runCommand(name string) error {
	switch name {
	case "init":
		path, err := config.Save(config.Default())
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	case "reset":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.Background()
		db, err := openBoard(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
			return err
		}
		fmt.Println("board reset")
		return nil
	case "demo":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.Background()
		db, err := openBoard(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		n, err := testdata.Seed(ctx, testdata.Repos{Columns: repository.NewColumnRepo(db), Cards: repository.NewCardRepo(db)}, 60, time.Now().UnixNano())
		if err != nil {
			return err
		}
		fmt.Printf("added %d cards\n", n)
		return nil
	default:
		return fmt.Errorf("unknown command (want init, reset or demo)")
	}
}
