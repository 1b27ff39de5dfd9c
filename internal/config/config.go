package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/templui/eternalquest/internal/model"
)

// DefaultQuestFile is used when neither QUEST_FILE nor a path argument is given.
const DefaultQuestFile = "EternalQuest.txt"

type Config struct {
	// Application
	AppEnv    string
	QuestFile string

	// Gamification
	LevelStep       int
	BadgeThresholds []int

	// Event journal (optional driver switch via ENV, default: sqlite)
	JournalEnabled bool
	DBDriver       string
	DBConnection   string

	// Observability (optional)
	SentryDSN string

	// Backup (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3BackupKey string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		// Application
		AppEnv:    envString("APP_ENV", "production"), // "development" enables debug logs
		QuestFile: envString("QUEST_FILE", DefaultQuestFile),

		// Gamification
		LevelStep:       envInt("LEVEL_STEP", model.DefaultLevelStep),
		BadgeThresholds: envInts("BADGE_THRESHOLDS", []int{100, 500}),

		// Event journal
		JournalEnabled: envBool("JOURNAL_ENABLED", true),
		DBDriver:       envString("DB_DRIVER", "sqlite"),
		DBConnection:   envString("DB_CONNECTION", defaultJournal()),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Backup (only needed by the backup commands)
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),
		S3BackupKey: envString("S3_BACKUP_KEY", "quest/"+DefaultQuestFile),
	}
}

// defaultJournal places the sqlite journal under the user's config
// directory so that running the CLI elsewhere leaves no files behind.
func defaultJournal() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		slog.Debug("no user config directory, keeping journal in working directory", "error", err)
		dir = "."
	}
	return filepath.Join(dir, "eternalquest", "journal.db") + "?_pragma=journal_mode(WAL)"
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid positive int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// envInts parses a comma-separated list of positive integers.
func envInts(key string, def []int) []int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var out []int
	for _, field := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n <= 0 {
			slog.Warn("config invalid int list, using default", "key", key, "value", v, "default", def)
			return def
		}
		out = append(out, n)
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// BackupConfigured reports whether enough S3 settings are present to run
// the backup commands.
func (c *Config) BackupConfigured() bool {
	return c.S3Bucket != ""
}

// Policy builds the gamification policy. Badges are named after their
// threshold ("Score100") as the quest file never stores them.
func (c *Config) Policy() model.Policy {
	policy := model.Policy{LevelStep: c.LevelStep}
	for _, t := range c.BadgeThresholds {
		policy.Badges = append(policy.Badges, model.BadgeRule{
			Name:      "Score" + strconv.Itoa(t),
			Label:     strconv.Itoa(t) + "+ points",
			Threshold: t,
		})
	}
	return policy
}
