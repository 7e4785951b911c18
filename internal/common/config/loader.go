// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OBBRN_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills credentials and endpoints straight from the
// environment when the YAML left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Worklist.PendingURL == "" {
		if val := os.Getenv("CUSTOMER_SERVICE_API_PENDING"); val != "" {
			cfg.Worklist.PendingURL = val
		}
	}

	if cfg.FCUBS.QueryAccountURL == "" {
		if val := os.Getenv("FCUBS_QUERY_ACC_URL"); val != "" {
			cfg.FCUBS.QueryAccountURL = val
		}
	}
	if cfg.FCUBS.AuthorizeAccountURL == "" {
		if val := os.Getenv("FCUBS_AUTHORIZE_ACC_URL"); val != "" {
			cfg.FCUBS.AuthorizeAccountURL = val
		}
	}

	if cfg.OBBRN.AuthURL == "" {
		if val := os.Getenv("OBBRN_AUTH_URL"); val != "" {
			cfg.OBBRN.AuthURL = val
		}
	}
	if cfg.OBBRN.EJLogURL == "" {
		if val := os.Getenv("OBBRN_EJ_LOG_URL"); val != "" {
			cfg.OBBRN.EJLogURL = val
		}
	}
	if cfg.OBBRN.ApproveURL == "" {
		if val := os.Getenv("OBBRN_APPROVE_URL"); val != "" {
			cfg.OBBRN.ApproveURL = val
		}
	}
	if cfg.OBBRN.Username == "" {
		if val := os.Getenv("OBBRN_USERNAME"); val != "" {
			cfg.OBBRN.Username = val
		}
	}
	if cfg.OBBRN.Password == "" {
		if val := os.Getenv("OBBRN_PASSWORD"); val != "" {
			cfg.OBBRN.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Worklist.Timeout == 0 {
		cfg.Worklist.Timeout = 10000
	}

	if cfg.FCUBS.AuthorizeBranch == "" {
		cfg.FCUBS.AuthorizeBranch = "000"
	}
	if cfg.FCUBS.UserID == "" {
		cfg.FCUBS.UserID = "SYSTEM"
	}
	if cfg.FCUBS.Entity == "" {
		cfg.FCUBS.Entity = "ENTITY_ID1"
	}
	if cfg.FCUBS.Source == "" {
		cfg.FCUBS.Source = "FCAT"
	}
	if cfg.FCUBS.Timeout == 0 {
		cfg.FCUBS.Timeout = 10000
	}

	if cfg.OBBRN.AppIDView == "" {
		cfg.OBBRN.AppIDView = "SRVCMNTXN"
	}
	if cfg.OBBRN.AppIDApprove == "" {
		cfg.OBBRN.AppIDApprove = "SRVBRANCHCOMMON"
	}
	if cfg.OBBRN.EntityID == "" {
		cfg.OBBRN.EntityID = "DEFAULTENTITY"
	}
	if cfg.OBBRN.SourceCode == "" {
		cfg.OBBRN.SourceCode = "FCUBS"
	}
	if cfg.OBBRN.DefaultBranch == "" {
		cfg.OBBRN.DefaultBranch = "000"
	}
	if cfg.OBBRN.Timeout == 0 {
		cfg.OBBRN.Timeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Worklist.PendingURL == "" {
		return fmt.Errorf("worklist.pending_url is required")
	}

	if cfg.FCUBS.QueryAccountURL == "" {
		return fmt.Errorf("fcubs.query_account_url is required")
	}
	if cfg.FCUBS.AuthorizeAccountURL == "" {
		return fmt.Errorf("fcubs.authorize_account_url is required")
	}

	if cfg.OBBRN.AuthURL == "" {
		return fmt.Errorf("obbrn.auth_url is required")
	}
	if cfg.OBBRN.EJLogURL == "" {
		return fmt.Errorf("obbrn.ej_log_url is required")
	}
	if cfg.OBBRN.ApproveURL == "" {
		return fmt.Errorf("obbrn.approve_url is required")
	}
	if cfg.OBBRN.Username == "" {
		return fmt.Errorf("obbrn.username is required")
	}
	if cfg.OBBRN.Password == "" {
		return fmt.Errorf("obbrn.password is required")
	}

	return nil
}
