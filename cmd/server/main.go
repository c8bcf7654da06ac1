package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	sqliteadapter "github.com/Gwatamalou/DocGenerator/internal/adapters/sqlite"
	"github.com/Gwatamalou/DocGenerator/internal/generator"
	"github.com/Gwatamalou/DocGenerator/internal/handlers"
	"github.com/Gwatamalou/DocGenerator/internal/submit"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	dsn := os.Getenv("DB_PATH")
	if dsn == "" {
		dsn = "docgen.db"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	generatorURL := os.Getenv("GENERATOR_URL")
	if generatorURL == "" {
		generatorURL = "http://localhost:8000"
	}
	// Zero means no client-side timeout; the transport's defaults apply.
	var timeout time.Duration
	if v := os.Getenv("GENERATOR_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid GENERATOR_TIMEOUT_SECONDS: %v", err)
		}
		timeout = time.Duration(secs) * time.Second
	}

	repo, err := sqliteadapter.New(dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	gen := generator.NewClient(generatorURL, timeout)
	ctrl := submit.New(gen, repo)
	h := handlers.New(ctrl, repo)

	log.Printf("Coordinate Report Generator running on http://localhost:%s", port)
	log.Printf("Generation service: %s", generatorURL)
	log.Printf("Database: %s", dsn)
	if err := http.ListenAndServe(":"+port, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
