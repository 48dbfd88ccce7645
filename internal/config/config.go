package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	DBDSN           string
	LogFile         string
	ProcessingDelay time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "onlineshop.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./onlineshop.log"
	}
	// Simulated payment-processing pause during checkout.
	delay := 1500 * time.Millisecond
	if ms := os.Getenv("PROCESSING_DELAY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, ProcessingDelay: delay}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s PROCESSING_DELAY=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ProcessingDelay)
	return cfg
}
