package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"postboard/app/config"
	"postboard/app/dto"
	"postboard/app/repositories"
	"postboard/app/services"
)

// HandleCommand handles subcommands and returns an exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	if cmd == "help" {
		printHelp()
		return 0
	}

	cfg, err := loadConfig()
	if err != nil {
		printf("Failed to load configuration: %v\n", err)
		return 1
	}

	switch cmd {
	case "serve":
		return RunAppServer(cfg)
	case "clean":
		return clean(cfg, hasFlag(args[1:], "-y"))
	case "init":
		return initDb(cfg)
	case "backup":
		return backup(cfg)
	case "restore":
		if len(args) < 2 {
			printLine("Error: backup file path required for restore")
			return 1
		}
		return restore(cfg, args[1], hasFlag(args[2:], "-y"))
	case "seed":
		count := 5
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				printf("Error: seed count must be a positive number, got %q\n", args[1])
				return 1
			}
			count = n
		}
		return seed(cfg, count)
	default:
		printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// printHelp prints help for subcommands.
func printHelp() {
	helpText := `Usage: postboard <command>

Commands:
  serve                 Run the HTTP API
  clean [-y]            Remove the badger database
  init                  Initialize a new empty badger database
  backup                Write a backup of the badger database to BACKUP_DIR
  restore <file> [-y]   Restore the badger database from a backup
  seed [users]          Create demo users with posts and comments
  version               Show version information
  help                  Display this help message

Configuration is read from .env, config.yml and the environment (see STORAGE,
BADGER_PATH, DATABASE_URL, SQLITE_PATH, PORT, LOG_LEVEL).`
	printLine(helpText)
}

// requireBadger rejects administrative commands on relational storage.
func requireBadger(cfg *config.Config, cmd string) bool {
	if cfg.Storage != config.StorageBadger {
		printf("The %s command only applies to badger storage (STORAGE=%s)\n", cmd, cfg.Storage)
		return false
	}
	if cfg.BadgerInMemory {
		printf("The %s command needs an on-disk badger database\n", cmd)
		return false
	}
	return true
}

// clean removes the database.
func clean(cfg *config.Config, yes bool) int {
	if !requireBadger(cfg, "clean") {
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		printLine("Database is already clean (does not exist)")
		return 0
	}

	if !yes && !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		printLine("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(cfg.BadgerPath); err != nil {
		printf("Failed to clean database: %v\n", err)
		return 1
	}
	printLine("Database cleaned successfully")
	return 0
}

// initDb initializes a new empty database.
func initDb(cfg *config.Config) int {
	if !requireBadger(cfg, "init") {
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		printLine("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	if err := os.MkdirAll(cfg.BadgerPath, 0o755); err != nil {
		printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadgerDB(repositories.BadgerOptions{Path: cfg.BadgerPath})
	if err != nil {
		printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	printLine("Database initialized successfully")
	return 0
}

// backup creates a backup of the database.
func backup(cfg *config.Config) int {
	if !requireBadger(cfg, "backup") {
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		printLine("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(cfg.BackupDir, 0o755); err != nil {
		printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadgerDB(repositories.BadgerOptions{Path: cfg.BadgerPath})
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		printf("Failed to backup database: %v\n", err)
		return 1
	}

	printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore restores the database from a backup.
func restore(cfg *config.Config, backupFile string, yes bool) int {
	if !requireBadger(cfg, "restore") {
		return 1
	}
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		if !yes && !confirm("Existing database found. Do you want to replace it?") {
			printLine("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.BadgerPath); err != nil {
			printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(cfg.BadgerPath, 0o755); err != nil {
		printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadgerDB(repositories.BadgerOptions{Path: cfg.BadgerPath})
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		printf("Failed to restore database: %v\n", err)
		return 1
	}

	printLine("Database restored successfully")
	return 0
}

// seed fills any configured store with fake users, each with posts and comments.
func seed(cfg *config.Config, users int) int {
	log, err := newLogger(cfg)
	if err != nil {
		printf("Failed to create logger: %v\n", err)
		return 1
	}
	store, err := openStore(cfg, log)
	if err != nil {
		printf("Failed to open store: %v\n", err)
		return 1
	}
	defer store.Close()

	posts, comments, err := seedStore(context.Background(), store, log, users)
	if err != nil {
		printf("Failed to seed database: %v\n", err)
		return 1
	}
	printf("Seeded %d users, %d posts and %d comments\n", users, posts, comments)
	return 0
}

func seedStore(ctx context.Context, store repositories.Store, log *slog.Logger, users int) (int, int, error) {
	userSvc := services.NewUserService(store, log)
	postSvc := services.NewPostService(store, log)
	commentSvc := services.NewCommentService(store, log)

	var authorIDs, postIDs []int64
	for i := 0; i < users; i++ {
		name, surname := gofakeit.FirstName(), gofakeit.LastName()
		email := fmt.Sprintf("%s.%d@%s", gofakeit.Username(), time.Now().UnixNano(), gofakeit.DomainName())
		password := gofakeit.Password(true, true, true, false, false, 12)
		u, err := userSvc.CreateUser(ctx, &dto.UserRequest{
			Name: &name, Surname: &surname, Email: &email, Password: &password,
		})
		if err != nil {
			return 0, 0, fmt.Errorf("creating user: %w", err)
		}
		authorIDs = append(authorIDs, u.ID)

		for j := 0; j < gofakeit.Number(1, 3); j++ {
			content := gofakeit.Sentence(gofakeit.Number(5, 30))
			p, err := postSvc.CreatePost(ctx, u.ID, &dto.PostRequest{Content: &content})
			if err != nil {
				return 0, 0, fmt.Errorf("creating post: %w", err)
			}
			postIDs = append(postIDs, p.ID)
		}
	}

	comments := 0
	for _, postID := range postIDs {
		for j := 0; j < gofakeit.Number(0, 3); j++ {
			author := authorIDs[gofakeit.Number(0, len(authorIDs)-1)]
			pid := postID
			content := gofakeit.Sentence(gofakeit.Number(3, 15))
			if _, err := commentSvc.CreateComment(ctx, &dto.CommentRequest{
				UserID: &author, PostID: &pid, Content: &content,
			}); err != nil {
				return 0, 0, fmt.Errorf("creating comment: %w", err)
			}
			comments++
		}
	}
	return len(postIDs), comments, nil
}
