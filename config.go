package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigName  = "config.yaml"
	defaultFromAddress = "noreply@yourcompany.com"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Emails   EmailConfig    `yaml:"report_emails"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Server   string `yaml:"server"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type SMTPConfig struct {
	Server string `yaml:"server"`
	Port   int    `yaml:"port"`
	UID    string `yaml:"uid"`
	// Base64 at rest; decoded in memory immediately before authentication.
	// This is obfuscation, not encryption.
	PasswordB64 string `yaml:"password_b64"`
	UseSTARTTLS bool   `yaml:"use_starttls"`
}

type EmailConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	CC   string `yaml:"cc"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found at %s", path)
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	cfg := Config{
		SMTP:   SMTPConfig{UseSTARTTLS: true},
		Emails: EmailConfig{From: defaultFromAddress},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Database.Server == "" {
		missing = append(missing, "database.server")
	}
	if c.Database.Database == "" {
		missing = append(missing, "database.database")
	}
	if c.Database.User == "" {
		missing = append(missing, "database.user")
	}
	if c.Database.Password == "" {
		missing = append(missing, "database.password")
	}
	if c.SMTP.Server == "" {
		missing = append(missing, "smtp.server")
	}
	if c.SMTP.Port <= 0 {
		missing = append(missing, "smtp.port")
	}
	if c.SMTP.UID == "" {
		missing = append(missing, "smtp.uid")
	}
	if c.SMTP.PasswordB64 == "" {
		missing = append(missing, "smtp.password_b64")
	}
	if c.Emails.From == "" {
		missing = append(missing, "report_emails.from")
	}
	if len(missing) > 0 {
		return fmt.Errorf("configuration missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c SMTPConfig) decodePassword() (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(c.PasswordB64))
	if err != nil {
		return "", fmt.Errorf("smtp.password_b64 is not valid base64: %w", err)
	}
	return string(raw), nil
}

func splitAddressList(value string) []string {
	var addrs []string
	for _, part := range strings.Split(value, ";") {
		if addr := strings.TrimSpace(part); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

// defaultConfigPath resolves config.yaml next to the executable, falling back
// to the working directory when the executable path cannot be determined.
func defaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(filepath.Dir(exe), defaultConfigName)
}
