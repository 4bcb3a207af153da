package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds the application settings, read from a JSON file once per
// process.
type Config struct {
	DataDir   string `json:"data_dir"`   // directory holding the spreadsheet
	DataFile  string `json:"data_file"`  // spreadsheet file name
	SheetName string `json:"sheet_name"` // empty selects the first sheet

	HTTPAddr   string `json:"http_addr"`
	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"` // e.g. "10 * 1024 * 1024"

	RefreshInterval Duration `json:"refresh_interval"` // rotation check cadence

	Email struct {
		Enabled       bool     `json:"enabled"`
		Server        string   `json:"server"`         // IMAP server address with port
		Username      string   `json:"username"`       // mailbox user
		Password      string   `json:"password"`       // password / app token
		TargetSubject string   `json:"target_subject"` // subject keyword of data mails
		CheckInterval Duration `json:"check_interval"`
	} `json:"email"`

	Webhook struct {
		Enabled bool   `json:"enabled"`
		URL     string `json:"url"`
	} `json:"webhook"`
}

var (
	once     sync.Once
	instance *Config
)

// LoadConfig reads the configuration file once; later calls return the
// same instance.
func LoadConfig(jsonFolder, jsonFile string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = loadConfig(filepath.Join(jsonFolder, jsonFile))
	})
	return instance, err
}

func loadConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configFile, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configFile, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.DataFile == "" {
		c.DataFile = "air_quality_history.xlsx"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.LogName == "" {
		c.LogName = "app.log"
	}
	if c.LogMaxSize == "" {
		c.LogMaxSize = "10 * 1024 * 1024"
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = Duration(5 * time.Minute)
	}
	if c.Email.CheckInterval == 0 {
		c.Email.CheckInterval = Duration(15 * time.Minute)
	}
}

// DataPath is the full path of the source spreadsheet.
func (c *Config) DataPath() string {
	return filepath.Join(c.DataDir, c.DataFile)
}

// Duration wraps time.Duration for JSON round-tripping in "5m" notation.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
