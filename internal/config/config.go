package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	DbDriver       string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	SqlitePath     string
	TrustedProxies []string

	JwtSecret string
	JwtTTL    time.Duration

	MediaRoot string

	MailBackend      string
	SmtpHost         string
	SmtpPort         int
	SmtpUser         string
	SmtpPassword     string
	SmtpUseSSL       bool
	DefaultFromEmail string

	TranslationFolder string
	DefaultLanguage   string

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbDriver:       getEnv("DB_DRIVER", "mysql"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "cmms"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "cmms"),
		DbName:         getEnv("MYSQL_DATABASE", "cmms"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true&loc=UTC"),
		SqlitePath:     getEnv("SQLITE_PATH", "cmms.db"),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		JwtSecret: getEnv("JWT_SECRET", ""),
		JwtTTL:    getDuration("JWT_TTL", 24*time.Hour),

		MediaRoot: getEnv("MEDIA_ROOT", "media"),

		MailBackend:      getEnv("MAIL_BACKEND", "smtp"),
		SmtpHost:         getEnv("SMTP_HOST", "localhost"),
		SmtpPort:         getInt("SMTP_PORT", 465),
		SmtpUser:         getEnv("SMTP_USER", ""),
		SmtpPassword:     getEnv("SMTP_PASSWORD", ""),
		SmtpUseSSL:       getBool("SMTP_USE_SSL", true),
		DefaultFromEmail: getEnv("DEFAULT_FROM_EMAIL", "noreply@localhost"),

		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		DefaultLanguage:   getEnv("DEFAULT_LANGUAGE", "pl"),

		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, "")))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
