package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/ingestion"
	"github.com/spf13/viper"
)

type Configs struct {
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	DBMaxConns         int           `mapstructure:"DB_MAX_CONNS"`
	WebServerPort      string        `mapstructure:"WEB_SERVER_PORT"`
	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	AdminTokenExp      int           `mapstructure:"ADMIN_TOKEN_EXP"` // Default: 2592000 (30 days)
	RedisURL           string        `mapstructure:"REDIS_URL"`
	RedisHost          string        `mapstructure:"REDIS_HOST"`
	RedisPort          string        `mapstructure:"REDIS_PORT"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	TwilioAccountSID   string        `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string        `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioNumber       string        `mapstructure:"TWILIO_NUMBER"`
	EmailProvider      string        `mapstructure:"EMAIL_PROVIDER"` // "smtp", "mailjet" or empty for no email alerts
	MailFrom           string        `mapstructure:"MAIL_FROM"`
	MailFromName       string        `mapstructure:"MAIL_FROM_NAME"`
	MAILJET_API_KEY    string        `mapstructure:"MAILJET_API_KEY"`
	MAILJET_API_SECRET string        `mapstructure:"MAILJET_API_SECRET"`
	SMTP_HOST          string        `mapstructure:"SMTP_HOST"`
	SMTP_PORT          int           `mapstructure:"SMTP_PORT"`
	SMTP_USER          string        `mapstructure:"SMTP_USER"`
	SMTP_PASS          string        `mapstructure:"SMTP_PASS"`
	WorkbookPath       string        `mapstructure:"WORKBOOK_PATH"`
	SheetNames         []string      `mapstructure:"SHEET_NAMES"`
	DataRanges         []string      `mapstructure:"DATA_RANGES"` // One range for every sheet, or one per sheet
	PreorderSheet      string        `mapstructure:"PREORDER_SHEET"`
	CoilsSheet         string        `mapstructure:"COILS_SHEET"`
	CoilsRange         string        `mapstructure:"COILS_RANGE"`
	CatalogRulesPath   string        `mapstructure:"CATALOG_RULES_PATH"`
	CronExpression     string        `mapstructure:"CRON_EXPRESSION"` // Cron expression for the ingestion job (6 fields with seconds)
	IngestionTimeout   time.Duration `mapstructure:"INGESTION_TIMEOUT"`
	IngestionLockTTL   time.Duration `mapstructure:"INGESTION_LOCK_TTL"`
	RunOnStartup       bool          `mapstructure:"RUN_ON_STARTUP"`
	RateLimit          float64       `mapstructure:"RATE_LIMIT"` // Requests per second per client, 0 disables
	RateBurst          int           `mapstructure:"RATE_BURST"`
	LogPath            string        `mapstructure:"LOG_PATH"`         // Path to log file (e.g., "/var/log/liquid-catalog.log")
	AlertRecipients    []string      `mapstructure:"ALERT_RECIPIENTS"` // Email recipients for run alerts
	AlertPhones        []string      `mapstructure:"ALERT_PHONES"`     // SMS recipients for failed runs
}

var defaults = map[string]any{
	"DATABASE_URL":       "",
	"DB_MAX_CONNS":       10,
	"WEB_SERVER_PORT":    "8080",
	"JWT_SECRET":         "",
	"ADMIN_TOKEN_EXP":    2592000,
	"REDIS_URL":          "",
	"REDIS_HOST":         "",
	"REDIS_PORT":         "6379",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           0,
	"TWILIO_ACCOUNT_SID": "",
	"TWILIO_AUTH_TOKEN":  "",
	"TWILIO_NUMBER":      "",
	"EMAIL_PROVIDER":     "",
	"MAIL_FROM":          "",
	"MAIL_FROM_NAME":     "liquid-catalog",
	"MAILJET_API_KEY":    "",
	"MAILJET_API_SECRET": "",
	"SMTP_HOST":          "",
	"SMTP_PORT":          587,
	"SMTP_USER":          "",
	"SMTP_PASS":          "",
	"WORKBOOK_PATH":      "",
	"SHEET_NAMES":        []string{"Предзаказ", "Наличие"},
	"DATA_RANGES":        []string{"A1:D1000"},
	"PREORDER_SHEET":     "Предзаказ",
	"COILS_SHEET":        "",
	"COILS_RANGE":        "A1:B200",
	"CATALOG_RULES_PATH": "",
	// Every half hour, on the hour and half hour
	"CRON_EXPRESSION":    "0 0,30 * * * *",
	"INGESTION_TIMEOUT":  "10m",
	"INGESTION_LOCK_TTL": "15m",
	"RUN_ON_STARTUP":     true,
	"RATE_LIMIT":         10.0,
	"RATE_BURST":         20,
	"LOG_PATH":           "",
	"ALERT_RECIPIENTS":   []string{},
	"ALERT_PHONES":       []string{},
}

// LoadConfig reads path/.env when present, then the environment. Environment
// variables win over the file.
func LoadConfig(path string) (*Configs, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigFile(filepath.Join(path, ".env"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Configs
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Configs) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.WorkbookPath == "" {
		return errors.New("WORKBOOK_PATH is required")
	}
	if len(c.SheetNames) == 0 {
		return errors.New("SHEET_NAMES is empty")
	}
	if len(c.DataRanges) != 1 && len(c.DataRanges) != len(c.SheetNames) {
		return fmt.Errorf("DATA_RANGES has %d entries for %d sheets", len(c.DataRanges), len(c.SheetNames))
	}
	switch c.EmailProvider {
	case "", "smtp", "mailjet":
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}
	return nil
}

// RedisEnabled reports whether a shared redis was configured.
func (c *Configs) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// IngestionConfig maps the sheet settings onto the run configuration. The
// pre-order sheet is read as the pre-order channel, every other sheet as
// resale.
func (c *Configs) IngestionConfig() ingestion.Config {
	sheets := make([]ingestion.SheetSpec, 0, len(c.SheetNames))
	for i, name := range c.SheetNames {
		name = strings.TrimSpace(name)
		cellRange := c.DataRanges[0]
		if len(c.DataRanges) == len(c.SheetNames) {
			cellRange = c.DataRanges[i]
		}
		channel := catalog.ChannelResale
		if strings.EqualFold(name, strings.TrimSpace(c.PreorderSheet)) {
			channel = catalog.ChannelPreorder
		}
		sheets = append(sheets, ingestion.SheetSpec{
			Name:    name,
			Range:   strings.TrimSpace(cellRange),
			Channel: channel,
		})
	}
	return ingestion.Config{
		Sheets:     sheets,
		CoilsSheet: c.CoilsSheet,
		CoilsRange: c.CoilsRange,
		LockTTL:    c.IngestionLockTTL,
	}
}
