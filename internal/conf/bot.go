package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// BotConfig contains the bot's user-visible strings and task keywords,
// loaded from YAML
type BotConfig struct {
	Aliases []string      `yaml:"aliases"`
	Persona PersonaConfig `yaml:"persona"`
	Tasks   TaskKeywords  `yaml:"tasks"`
	Replies ReplyStrings  `yaml:"replies"`
	Filters FilterConfig  `yaml:"filters"`
}

// FilterConfig contains the classifier's drop rules
type FilterConfig struct {
	// SystemAccountName is the reserved platform notification account
	SystemAccountName string `yaml:"system_account_name"`
	// NoticePatterns are substrings of non-actionable system notices
	NoticePatterns []string `yaml:"notice_patterns"`
}

// PersonaConfig contains the completion persona
type PersonaConfig struct {
	// SystemPrompt may contain a {date} marker, replaced with the
	// startup calendar date
	SystemPrompt string `yaml:"system_prompt"`
}

// TaskKeywords contains the customized-task trigger keywords
type TaskKeywords struct {
	Echo      string `yaml:"echo"`
	Draw      string `yaml:"draw"`
	Interpret string `yaml:"interpret"`
	Quote     string `yaml:"quote"`
}

// ReplyStrings contains the canned reply strings
type ReplyStrings struct {
	EchoReply       string `yaml:"echo_reply"`
	CompletionError string `yaml:"completion_error"`
	AlreadyDrawn    string `yaml:"already_drawn"`
	NotDrawn        string `yaml:"not_drawn"`
	DrawFailed      string `yaml:"draw_failed"`
	QuoteFallback   string `yaml:"quote_fallback"`
}

// DefaultBotConfig returns the built-in strings
func DefaultBotConfig() *BotConfig {
	return &BotConfig{
		Aliases: []string{"@220", "@平安喜乐", "@赛博算命"},
		Persona: PersonaConfig{
			SystemPrompt: "You are ChatGPT, a large language model trained by OpenAI. Answer as concisely as possible.\nKnowledge cutoff: 2021-09-01\nCurrent date: {date}",
		},
		Tasks: TaskKeywords{
			Echo:      "麦扣",
			Draw:      "抽签",
			Interpret: "解签",
			Quote:     "fw",
		},
		Replies: ReplyStrings{
			EchoReply:       "🤖️：call我做咩啊大佬",
			CompletionError: "🤖️：ChatGPT摆烂了，请稍后再试～",
			AlreadyDrawn:    "你今天已经抽过签了",
			NotDrawn:        "你今天还没有抽签呢",
			DrawFailed:      "签筒倒了，请稍后再试",
			QuoteFallback:   "api调用失败",
		},
		Filters: FilterConfig{
			SystemAccountName: "微信团队",
			NoticePatterns: []string{
				"收到一条视频/语音聊天消息，请在手机上查看",
				"收到红包，请在手机上查看",
				"/cgi-bin/mmwebwx-bin/webwxgetpubliclinkimg",
			},
		},
	}
}

// LoadBotConfig loads the bot strings from a YAML file, falling back to
// the defaults when no file is found. Unset fields keep their defaults.
func LoadBotConfig(configPath string) (*BotConfig, error) {
	paths := []string{configPath}
	if configPath == "" {
		paths = []string{
			"configs/bot.yaml",
			"./configs/bot.yaml",
			"/etc/feishu-gpt-bot/bot.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "bot.yaml"))
		}
	}

	var data []byte
	var loadedPath string

	for _, p := range paths {
		if p == "" {
			continue
		}
		if b, err := os.ReadFile(p); err == nil {
			data = b
			loadedPath = p
			break
		}
	}

	cfg := DefaultBotConfig()
	if data == nil {
		fmt.Println("[Config] No bot.yaml found, using defaults")
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultBotConfig(), fmt.Errorf("failed to parse %s: %w", loadedPath, err)
	}

	fmt.Printf("[Config] Loaded bot config from: %s\n", loadedPath)
	fillBotDefaults(cfg)
	return cfg, nil
}

// fillBotDefaults restores defaults for fields the YAML left empty
func fillBotDefaults(cfg *BotConfig) {
	def := DefaultBotConfig()
	if len(cfg.Aliases) == 0 {
		cfg.Aliases = def.Aliases
	}
	if cfg.Persona.SystemPrompt == "" {
		cfg.Persona.SystemPrompt = def.Persona.SystemPrompt
	}
	if cfg.Tasks.Echo == "" {
		cfg.Tasks.Echo = def.Tasks.Echo
	}
	if cfg.Tasks.Draw == "" {
		cfg.Tasks.Draw = def.Tasks.Draw
	}
	if cfg.Tasks.Interpret == "" {
		cfg.Tasks.Interpret = def.Tasks.Interpret
	}
	if cfg.Tasks.Quote == "" {
		cfg.Tasks.Quote = def.Tasks.Quote
	}
	if cfg.Replies.EchoReply == "" {
		cfg.Replies.EchoReply = def.Replies.EchoReply
	}
	if cfg.Replies.CompletionError == "" {
		cfg.Replies.CompletionError = def.Replies.CompletionError
	}
	if cfg.Replies.AlreadyDrawn == "" {
		cfg.Replies.AlreadyDrawn = def.Replies.AlreadyDrawn
	}
	if cfg.Replies.NotDrawn == "" {
		cfg.Replies.NotDrawn = def.Replies.NotDrawn
	}
	if cfg.Replies.DrawFailed == "" {
		cfg.Replies.DrawFailed = def.Replies.DrawFailed
	}
	if cfg.Replies.QuoteFallback == "" {
		cfg.Replies.QuoteFallback = def.Replies.QuoteFallback
	}
	if cfg.Filters.SystemAccountName == "" {
		cfg.Filters.SystemAccountName = def.Filters.SystemAccountName
	}
	if len(cfg.Filters.NoticePatterns) == 0 {
		cfg.Filters.NoticePatterns = def.Filters.NoticePatterns
	}
}

// SystemPrompt renders the persona with the given calendar date
func (c *BotConfig) SystemPrompt(date string) string {
	return strings.ReplaceAll(c.Persona.SystemPrompt, "{date}", date)
}
