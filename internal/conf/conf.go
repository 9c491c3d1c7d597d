package conf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config represents application configuration
type Config struct {
	// Feishu configuration
	Feishu FeishuConfig

	// OpenAI configuration
	OpenAI OpenAIConfig

	// Trigger configuration
	Trigger TriggerConfig

	// Per-skill enable flags
	Skills SkillFlags

	// Content endpoint URLs
	Content ContentConfig

	// Bot strings configuration (loaded from YAML)
	Bot *BotConfig

	// SuppressSelfChat drops the bot's own echoed messages
	SuppressSelfChat bool

	// MaxSegmentRunes is the reply segment size limit
	MaxSegmentRunes int

	// HistoryDBPath is the dispatch history log location
	HistoryDBPath string

	// Debug mode
	Debug bool
}

// FeishuConfig contains Feishu configuration
type FeishuConfig struct {
	AppID     string
	AppSecret string
	BotName   string
}

// OpenAIConfig contains completion provider configuration
type OpenAIConfig struct {
	APIKey      string
	OrgID       string
	Model       string
	Temperature float32
}

// TriggerConfig contains trigger matching configuration
type TriggerConfig struct {
	Keyword string   // generic trigger keyword; empty triggers every private message
	Aliases []string // group-chat alias prefixes, e.g. "@220"
}

// SkillFlags enables or disables individual skills
type SkillFlags struct {
	Echo      bool
	Draw      bool
	Interpret bool
	Quote     bool
}

// ContentConfig contains external content endpoints
type ContentConfig struct {
	TimeURL     string
	SignDataURL string
	QuoteURL    string
}

const (
	defaultTimeURL     = "https://quan.suning.com/getSysTime.do"
	defaultSignDataURL = "https://docs.hdfk7.cn/static/000f.json"
	defaultQuoteURL    = "https://www.mxnzp.com/api/daily_word/recommend?count=10"
	defaultMaxSegment  = 500
)

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	historyDBPath := os.Getenv("HISTORY_DB_PATH")
	if historyDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		historyDBPath = filepath.Join(homeDir, ".feishu-gpt-bot", "history.db")
	}

	maxSegment := defaultMaxSegment
	if val := os.Getenv("SINGLE_MESSAGE_MAX_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			maxSegment = parsed
		}
	}

	temperature := float32(0.8)
	if val := os.Getenv("OPENAI_TEMPERATURE"); val != "" {
		if parsed, err := strconv.ParseFloat(val, 32); err == nil {
			temperature = float32(parsed)
		}
	}

	// Load bot strings from YAML (defaults when absent)
	botConfig, _ := LoadBotConfig(os.Getenv("BOT_CONFIG_PATH"))

	aliases := botConfig.Aliases
	if val := os.Getenv("BOT_ALIASES"); val != "" {
		aliases = nil
		for _, a := range strings.Split(val, ",") {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
	}

	return &Config{
		Feishu: FeishuConfig{
			AppID:     os.Getenv("FEISHU_APP_ID"),
			AppSecret: os.Getenv("FEISHU_APP_SECRET"),
			BotName:   os.Getenv("BOT_NAME"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			OrgID:       os.Getenv("OPENAI_ORGANIZATION_ID"),
			Model:       os.Getenv("OPENAI_MODEL"),
			Temperature: temperature,
		},
		Trigger: TriggerConfig{
			Keyword: os.Getenv("TRIGGER_KEYWORD"),
			Aliases: aliases,
		},
		Skills: SkillFlags{
			Echo:      envFlag("SKILL_ECHO", true),
			Draw:      envFlag("SKILL_DRAW", true),
			Interpret: envFlag("SKILL_INTERPRET", true),
			Quote:     envFlag("SKILL_QUOTE", true),
		},
		Content: ContentConfig{
			TimeURL:     envDefault("TIME_URL", defaultTimeURL),
			SignDataURL: envDefault("SIGN_DATA_URL", defaultSignDataURL),
			QuoteURL:    envDefault("QUOTE_URL", defaultQuoteURL),
		},
		Bot:              botConfig,
		SuppressSelfChat: os.Getenv("DISABLE_SELF_CHAT") == "true",
		MaxSegmentRunes:  maxSegment,
		HistoryDBPath:    historyDBPath,
		Debug:            os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Feishu.AppID == "" || c.Feishu.AppSecret == "" {
		return &ConfigError{Field: "FEISHU_APP_ID/FEISHU_APP_SECRET", Message: "required"}
	}
	if c.OpenAI.APIKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func envDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envFlag(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return fallback
	}
}
