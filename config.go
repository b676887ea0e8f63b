package main

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	"gopkg.in/yaml.v2"
)

const (
	envAppAuthToken    = "SLACK_APP_AUTH_TOKEN"
	envBotAccessToken  = "SLACK_BOT_USER_ACCESS_TOKEN"
	envProofreadAPIKey = "PROOF_READING_API_KEY"
)

// BotConfig struct
type BotConfig struct {
	LogLevel     logging.Level      `yaml:"log_level"`
	Debug        bool               `yaml:"debug"`
	SentryDSN    string             `yaml:"sentry_dsn"`
	HTTPServer   HTTPServerConfig   `yaml:"http_server"`
	Locale       string             `yaml:"locale"`
	Proofreading ProofreadingConfig `yaml:"proofreading"`
}

// HTTPServerConfig struct
type HTTPServerConfig struct {
	Host   string `yaml:"host"`
	Listen string `yaml:"listen"`
}

// ProofreadingConfig struct
type ProofreadingConfig struct {
	URL string `yaml:"url"`
}

// Credentials holds the secrets supplied through the process environment.
// They are read once at startup and passed around by reference; nothing
// mutates them afterwards.
type Credentials struct {
	AppAuthToken    string
	BotAccessToken  string
	ProofreadAPIKey string
}

// LoadConfig read configuration file
func LoadConfig(path string) *BotConfig {
	var err error

	path, err = filepath.Abs(path)
	if err != nil {
		panic(err)
	}

	source, err := ioutil.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var config BotConfig
	if err = yaml.Unmarshal(source, &config); err != nil {
		panic(err)
	}

	if config.Proofreading.URL == "" {
		config.Proofreading.URL = defaultProofreadingURL
	}

	return &config
}

// LoadCredentials reads the three required secrets from the environment.
// All of them must be present before any event is accepted.
func LoadCredentials() (*Credentials, error) {
	c := &Credentials{
		AppAuthToken:    os.Getenv(envAppAuthToken),
		BotAccessToken:  os.Getenv(envBotAccessToken),
		ProofreadAPIKey: os.Getenv(envProofreadAPIKey),
	}

	var missing []string
	if c.AppAuthToken == "" {
		missing = append(missing, envAppAuthToken)
	}
	if c.BotAccessToken == "" {
		missing = append(missing, envBotAccessToken)
	}
	if c.ProofreadAPIKey == "" {
		missing = append(missing, envProofreadAPIKey)
	}

	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	return c, nil
}
