package main

import (
	"database/sql"
	"embed"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"insurance-system/pkg/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func main() {
	command := flag.String("command", "up", "команда goose: up, down, status")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось подключиться к базе данных: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось выбрать диалект: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	default:
		log.Fatalf("неизвестная команда: %s", *command)
	}
	if err != nil {
		log.Fatalf("ошибка выполнения миграций: %v", err)
	}
}
