package obbrn

import (
	"fmt"
	"time"

	"github.com/haricode-hub/dashboard/internal/common/config"
)

type Config struct {
	AuthURL    string
	EJLogURL   string
	ApproveURL string

	Username string
	Password string

	// AppIDView and AppIDApprove are the application-scope identifiers
	// presented at the token exchange. The same credentials yield different
	// capability tokens depending on which one is sent.
	AppIDView    string
	AppIDApprove string

	EntityID      string
	SourceCode    string
	DefaultBranch string

	Timeout            time.Duration
	InsecureSkipVerify bool
}

func DefaultConfig() *Config {
	return &Config{
		AppIDView:     "SRVCMNTXN",
		AppIDApprove:  "SRVBRANCHCOMMON",
		EntityID:      "DEFAULTENTITY",
		SourceCode:    "FCUBS",
		DefaultBranch: "000",
		Timeout:       10 * time.Second,
	}
}

// FromAppConfig builds the adapter config from the application config.
func FromAppConfig(cfg config.OBBRNConfig) *Config {
	return &Config{
		AuthURL:            cfg.AuthURL,
		EJLogURL:           cfg.EJLogURL,
		ApproveURL:         cfg.ApproveURL,
		Username:           cfg.Username,
		Password:           cfg.Password,
		AppIDView:          cfg.AppIDView,
		AppIDApprove:       cfg.AppIDApprove,
		EntityID:           cfg.EntityID,
		SourceCode:         cfg.SourceCode,
		DefaultBranch:      cfg.DefaultBranch,
		Timeout:            config.GetDuration(cfg.Timeout),
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}
}

func (c *Config) Validate() error {
	if c.AuthURL == "" {
		return fmt.Errorf("auth_url is required")
	}
	if c.EJLogURL == "" {
		return fmt.Errorf("ej_log_url is required")
	}
	if c.ApproveURL == "" {
		return fmt.Errorf("approve_url is required")
	}
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.AppIDView == "" || c.AppIDApprove == "" {
		return fmt.Errorf("app_id_view and app_id_approve are required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
