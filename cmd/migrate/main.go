package main

import (
	"database/sql"
	"embed"
	"flag"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registra el driver pgx para database/sql
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Aplica las migraciones goose embebidas. Comandos: up (default), down, status.
func main() {
	command := flag.String("command", "up", "comando goose: up, down, status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión")
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("dialecto goose")
	}

	switch *command {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	default:
		log.Fatal().Str("command", *command).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migración fallida")
	}
	log.Info().Str("command", *command).Msg("migraciones aplicadas")
}
