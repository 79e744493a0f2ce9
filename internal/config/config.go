package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Store struct {
		File string `yaml:"file"`
	} `yaml:"store"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		MonthlyCron string `yaml:"monthly_cron"`
		ImportCron  string `yaml:"import_cron"`
	} `yaml:"schedule"`
	Import struct {
		URL   string `yaml:"url"`
		Token string `yaml:"token"`
		File  string `yaml:"file"`
	} `yaml:"import"`
	Report struct {
		Dir          string `yaml:"dir"`
		ShowSalaries *bool  `yaml:"show_salaries"`
	} `yaml:"report"`
	Proxy string `yaml:"proxy"`
}

// cronParser matches the scheduler's cron.WithSeconds() layout.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("STORE_FILE"); v != "" {
		cfg.Store.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("IMPORT_URL"); v != "" {
		cfg.Import.URL = v
	}
	if v := os.Getenv("IMPORT_TOKEN"); v != "" {
		cfg.Import.Token = v
	}
	if v := os.Getenv("IMPORT_FILE"); v != "" {
		cfg.Import.File = v
	}
	if v := os.Getenv("CRON_MONTHLY"); v != "" {
		cfg.Schedule.MonthlyCron = v
	}
	if v := os.Getenv("CRON_IMPORT"); v != "" {
		cfg.Schedule.ImportCron = v
	}
	if v := os.Getenv("REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SHOW_SALARIES"); v != "" {
		if show, err := strconv.ParseBool(v); err == nil {
			cfg.Report.ShowSalaries = &show
		}
	}

	// Defaults
	if cfg.Store.File == "" {
		cfg.Store.File = "data/roster.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/premiacao.db"
	}
	if cfg.Schedule.MonthlyCron == "" {
		cfg.Schedule.MonthlyCron = "0 0 9 1 * *"
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "reports"
	}
	if cfg.Report.ShowSalaries == nil {
		show := true
		cfg.Report.ShowSalaries = &show
	}

	return cfg, nil
}

// ShowSalaries reports whether salaries are visible in chat summaries.
func (c *Config) ShowSalaries() bool {
	return c.Report.ShowSalaries == nil || *c.Report.ShowSalaries
}

// Validate checks that cron expressions parse and an import source is usable.
func (c *Config) Validate() error {
	if c.Schedule.MonthlyCron == "" {
		return fmt.Errorf("schedule.monthly_cron is required")
	}
	if _, err := cronParser.Parse(c.Schedule.MonthlyCron); err != nil {
		return fmt.Errorf("schedule.monthly_cron: %w", err)
	}
	if c.Schedule.ImportCron != "" {
		if _, err := cronParser.Parse(c.Schedule.ImportCron); err != nil {
			return fmt.Errorf("schedule.import_cron: %w", err)
		}
		if c.Import.URL == "" && c.Import.File == "" {
			return fmt.Errorf("schedule.import_cron requires import.url or import.file")
		}
	}
	if c.Store.File == "" {
		return fmt.Errorf("store.file is required")
	}
	return nil
}
