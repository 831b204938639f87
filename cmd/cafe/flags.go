package main

import (
	"flag"
	"github.com/joho/godotenv"
	"os"
)

var flagRunAddr string
var flagLogLevel string
var flagDatabaseURI string
var flagStaticDir string

func parseFlags() {
	flag.StringVar(&flagRunAddr, "a", ":3000", "address and port")
	flag.StringVar(&flagLogLevel, "l", "info", "log level")
	flag.StringVar(&flagDatabaseURI, "d", "./cafe.db", "database file")
	flag.StringVar(&flagStaticDir, "s", "./public", "static files directory")
	flag.Parse()

	// .env необязателен
	_ = godotenv.Load()

	if envRunAddr := os.Getenv("RUN_ADDR"); envRunAddr != "" {
		flagRunAddr = envRunAddr
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		flagLogLevel = envLogLevel
	}

	if envDatabaseUri := os.Getenv("DATABASE_URI"); envDatabaseUri != "" {
		flagDatabaseURI = envDatabaseUri
	}

	if envStaticDir := os.Getenv("STATIC_DIR"); envStaticDir != "" {
		flagStaticDir = envStaticDir
	}
}
