// Package config loads the solvr configuration and resolves the credential
// for the configured model.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/solvr/internal/chat"
	"github.com/baalimago/solvr/internal/evaluator"
	"github.com/baalimago/solvr/internal/gateway"
	"github.com/baalimago/solvr/internal/gateway/groq"
	"github.com/baalimago/solvr/internal/router"
	"github.com/baalimago/solvr/internal/utils"
)

const FileName = "solvrConfig.json"

// DefaultRateLimitMaxWait is how long a spent token budget may hold a
// question back before the gateway gives up.
const DefaultRateLimitMaxWait = "30s"

var ErrMissingAPIKey = errors.New("missing api key")

// Config is persisted as json in the config dir. APIKey is never written,
// it's resolved from the environment on each startup.
type Config struct {
	Model               string   `json:"model"`
	Temperature         *float64 `json:"temperature"`
	MaxTokens           int      `json:"max-tokens"`
	MaxSteps            int      `json:"max-steps"`
	EarlyStopping       string   `json:"early-stopping"`
	HandleParsingErrors bool     `json:"handle-parsing-errors"`
	Evaluator           string   `json:"evaluator"`
	Greeting            string   `json:"greeting"`
	// RateLimitMaxWait is a duration, ex: "30s". "0s" waits as long as needed.
	RateLimitMaxWait string `json:"rate-limit-max-wait"`

	APIKey    string `json:"-"`
	ConfigDir string `json:"-"`
}

// Default mirrors the groq defaults of the gateway.
func Default() Config {
	temp := groq.Default.Temperature
	return Config{
		Model:               groq.Default.Model,
		Temperature:         &temp,
		MaxTokens:           groq.Default.MaxTokens,
		MaxSteps:            router.DefaultMaxSteps,
		EarlyStopping:       router.EarlyStoppingForce,
		HandleParsingErrors: false,
		Evaluator:           evaluator.BackendYaegi,
		Greeting:            chat.DefaultGreeting,
		RateLimitMaxWait:    DefaultRateLimitMaxWait,
	}
}

// Load the config from <configDir>/solvrConfig.json, creating it if missing,
// then apply the SOLVR_MODEL and SOLVR_MAX_STEPS environment overrides.
func Load(configDir string) (Config, error) {
	dflt := Default()
	conf, err := utils.LoadConfigFromFile(configDir, FileName, &dflt)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	conf.ConfigDir = configDir
	if err := conf.applyEnv(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *Config) applyEnv() error {
	if m := os.Getenv("SOLVR_MODEL"); m != "" {
		c.Model = m
	}
	if s := os.Getenv("SOLVR_MAX_STEPS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return fmt.Errorf("failed to parse SOLVR_MAX_STEPS: '%v', must be a positive integer", s)
		}
		c.MaxSteps = n
	}
	return nil
}

// Validate the values which can't be fixed by falling back to defaults.
func (c Config) Validate() error {
	if c.Model == "" {
		return errors.New("model is empty")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max-steps must be positive, got: %v", c.MaxSteps)
	}
	switch c.EarlyStopping {
	case router.EarlyStoppingForce, router.EarlyStoppingGenerate:
	default:
		return fmt.Errorf("early-stopping must be one of [%v, %v], got: '%v'",
			router.EarlyStoppingForce, router.EarlyStoppingGenerate, c.EarlyStopping)
	}
	switch c.Evaluator {
	case evaluator.BackendYaegi, evaluator.BackendExpr:
	default:
		return fmt.Errorf("evaluator must be one of [%v, %v], got: '%v'",
			evaluator.BackendYaegi, evaluator.BackendExpr, c.Evaluator)
	}
	if _, err := c.rateLimitMaxWait(); err != nil {
		return err
	}
	return nil
}

func (c Config) rateLimitMaxWait() (time.Duration, error) {
	if c.RateLimitMaxWait == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RateLimitMaxWait)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate-limit-max-wait: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("rate-limit-max-wait must not be negative, got: '%v'", c.RateLimitMaxWait)
	}
	return d, nil
}

// ResolveAPIKey for the configured model from the vendor's environment
// variable and store it on the config. Models served without a credential
// resolve to an empty key.
func (c *Config) ResolveAPIKey() error {
	env := gateway.APIKeyEnv(c.Model)
	if env == "" {
		return nil
	}
	key := os.Getenv(env)
	if key == "" {
		return fmt.Errorf("%w: set %v to use model: '%v'", ErrMissingAPIKey, env, c.Model)
	}
	c.APIKey = key
	return nil
}

// GatewaySettings for constructing the completer.
func (c Config) GatewaySettings() gateway.Settings {
	temp := 0.0
	if c.Temperature != nil {
		temp = *c.Temperature
	}
	// Validated at startup, a broken value falls back to no cap
	maxWait, _ := c.rateLimitMaxWait()
	return gateway.Settings{
		Model:            c.Model,
		Temperature:      temp,
		MaxTokens:        c.MaxTokens,
		APIKey:           c.APIKey,
		RateLimitMaxWait: maxWait,
	}
}

// Print the config, omitting the credential.
func (c Config) Print() {
	ancli.PrintOK(fmt.Sprintf("model: %v, max-steps: %v, early-stopping: %v, evaluator: %v, config dir: %v\n",
		c.Model, c.MaxSteps, c.EarlyStopping, c.Evaluator, c.ConfigDir))
}
