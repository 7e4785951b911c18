package fcubs

import (
	"fmt"
	"time"

	"github.com/haricode-hub/dashboard/internal/common/config"
)

type Config struct {
	QueryAccountURL     string
	AuthorizeAccountURL string
	// AuthorizeBranch is the fixed central branch used for every authorize
	// call, regardless of the record's originating branch.
	AuthorizeBranch    string
	UserID             string
	Entity             string
	Source             string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func DefaultConfig() *Config {
	return &Config{
		AuthorizeBranch: "000",
		UserID:          "SYSTEM",
		Entity:          "ENTITY_ID1",
		Source:          "FCAT",
		Timeout:         10 * time.Second,
	}
}

// FromAppConfig builds the adapter config from the application config.
func FromAppConfig(cfg config.FCUBSConfig) *Config {
	return &Config{
		QueryAccountURL:     cfg.QueryAccountURL,
		AuthorizeAccountURL: cfg.AuthorizeAccountURL,
		AuthorizeBranch:     cfg.AuthorizeBranch,
		UserID:              cfg.UserID,
		Entity:              cfg.Entity,
		Source:              cfg.Source,
		Timeout:             config.GetDuration(cfg.Timeout),
		InsecureSkipVerify:  cfg.InsecureSkipVerify,
	}
}

func (c *Config) Validate() error {
	if c.QueryAccountURL == "" {
		return fmt.Errorf("query_account_url is required")
	}
	if c.AuthorizeAccountURL == "" {
		return fmt.Errorf("authorize_account_url is required")
	}
	if c.AuthorizeBranch == "" {
		return fmt.Errorf("authorize_branch is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
