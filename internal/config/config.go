package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	TemplatesDir string
	StaticDir    string
	LogFile      string
	CookieSecure bool
	CORSOrigins  string
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBDSN:        getenv("DB_DSN", "carshop.db"), // sqlite file in project root
		TemplatesDir: getenv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getenv("STATIC_DIR", "./web/static"),
		LogFile:      getenv("LOG_FILE", "./carshop.log"),
		CookieSecure: getenv("COOKIE_SECURE", "false") == "true",
		CORSOrigins:  getenv("CORS_ORIGINS", "http://localhost:3000"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s TEMPLATES_DIR=%s LOG_FILE=%s COOKIE_SECURE=%t",
		cfg.Port, cfg.DBDSN, cfg.TemplatesDir, cfg.LogFile, cfg.CookieSecure)
	return cfg
}
