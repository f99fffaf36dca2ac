package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seekers/backend/internal/config"
	"github.com/seekers/backend/internal/logging"
	"github.com/seekers/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   差分マイグレーションを適用
  reset       全テーブルを DROP し、集約スキーマで再作成
  fresh       全テーブルを DROP し、全マイグレーションを順番に適用

DATABASE_URL が mongodb:// の場合はコマンドに関係なくインデックス作成のみ行う。`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "reset" && cmd != "fresh" {
		usage()
	}

	ctx := context.Background()
	if repository.IsMongoURL(cfg.DatabaseURL) {
		if err := ensureMongoIndexes(ctx, cfg); err != nil {
			logging.Fatal("mongo index migration failed", "error", err)
		}
		return
	}

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := &pgMigrator{pool: pool, dir: findMigrationDir()}
	switch cmd {
	case "":
		err = m.incremental(ctx)
	case "reset":
		if err = m.dropAll(ctx); err == nil {
			err = m.consolidated(ctx)
		}
	case "fresh":
		if err = m.dropAll(ctx); err == nil {
			err = m.incremental(ctx)
		}
	}
	if err != nil {
		pool.Close()
		logging.Fatal("migration failed", "command", cmd, "error", err)
	}
}

// ensureMongoIndexes はコレクションのインデックスを作成する（冪等）
func ensureMongoIndexes(ctx context.Context, cfg *config.Config) error {
	db, client, err := repository.NewMongoDatabase(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes on %s: %w", db.Name(), err)
	}
	slog.Info("mongo indexes ensured", "database", db.Name())
	return nil
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

// pgMigrator applies the SQL files in dir and records them in schema_migrations.
type pgMigrator struct {
	pool *pgxpool.Pool
	dir  string
}

// upFiles は .up.sql ファイル名をソート済みで返す
func (m *pgMigrator) upFiles() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *pgMigrator) readSQL(filename string) (string, error) {
	b, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(b), nil
}

func (m *pgMigrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

// incremental は未適用のマイグレーションを 1 ファイル 1 トランザクションで適用する
func (m *pgMigrator) incremental(ctx context.Context) error {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")

		var exists bool
		if err := m.pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", name, err)
		}
		if exists {
			continue
		}

		sql, err := m.readSQL(filename)
		if err != nil {
			return err
		}
		if err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, sql); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
			return err
		}); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

// dropAll は 000_drop_all.sql で全テーブルを削除する
func (m *pgMigrator) dropAll(ctx context.Context) error {
	slog.Info("dropping all tables")
	sql, err := m.readSQL("000_drop_all.sql")
	if err != nil {
		return err
	}
	if _, err := m.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	slog.Info("all tables dropped")
	return nil
}

// consolidated は集約スキーマを適用し、全マイグレーションを適用済みとして記録する
func (m *pgMigrator) consolidated(ctx context.Context) error {
	slog.Info("applying consolidated schema")
	sql, err := m.readSQL("000_consolidated.sql")
	if err != nil {
		return err
	}
	if _, err := m.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("consolidated apply: %w", err)
	}

	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	files, err := m.upFiles()
	if err != nil {
		return err
	}
	for _, filename := range files {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := m.pool.Exec(ctx,
			"INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("mark %s: %w", name, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(files))
	return nil
}
