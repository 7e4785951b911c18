// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Worklist WorklistConfig `mapstructure:"worklist"`
	FCUBS    FCUBSConfig    `mapstructure:"fcubs"`
	OBBRN    OBBRNConfig    `mapstructure:"obbrn"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// WorklistConfig holds the upstream pending-items source.
type WorklistConfig struct {
	PendingURL string `mapstructure:"pending_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// FCUBSConfig holds the core banking backend endpoints and the static
// service-account identity it expects in request headers.
type FCUBSConfig struct {
	QueryAccountURL     string `mapstructure:"query_account_url"`
	AuthorizeAccountURL string `mapstructure:"authorize_account_url"`
	// AuthorizeBranch is the central branch every authorization is issued
	// under, regardless of the record's originating branch.
	AuthorizeBranch    string `mapstructure:"authorize_branch"`
	UserID             string `mapstructure:"user_id"`
	Entity             string `mapstructure:"entity"`
	Source             string `mapstructure:"source"`
	Timeout            int    `mapstructure:"timeout"` // milliseconds
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// OBBRNConfig holds the branch banking backend endpoints, service
// credentials, and the two application-scope identifiers used at the token
// exchange. The same credentials yield different capability tokens depending
// on which appId is presented.
type OBBRNConfig struct {
	AuthURL    string `mapstructure:"auth_url"`
	EJLogURL   string `mapstructure:"ej_log_url"`
	ApproveURL string `mapstructure:"approve_url"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	AppIDView    string `mapstructure:"app_id_view"`
	AppIDApprove string `mapstructure:"app_id_approve"`

	EntityID      string `mapstructure:"entity_id"`
	SourceCode    string `mapstructure:"source_code"`
	DefaultBranch string `mapstructure:"default_branch"`

	Timeout            int  `mapstructure:"timeout"` // milliseconds
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
