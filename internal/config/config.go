package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	ExportDir string
	LogFile   string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "offerkit.db"
	} // sqlite file in project root
	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "./exports"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./offerkit.log" // default log sink in project root
	}

	cfg := Config{Port: port, DBDSN: dsn, ExportDir: exportDir, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s EXPORT_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.ExportDir, cfg.LogFile)
	return cfg
}
