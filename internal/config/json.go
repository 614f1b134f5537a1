package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration to accept human-readable strings ("24h",
// "30s") in JSON config files.
type Duration struct {
	time.Duration
}

// UnmarshalJSON parses either a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}

	return nil
}

// jsonConfig mirrors StructuredConfig with the field names expected in the
// JSON configuration file.
type jsonConfig struct {
	Address        string   `json:"address"`
	DatabaseDSN    string   `json:"database_dsn"`
	DatabaseDriver string   `json:"database_driver"`
	TokenSignKey   string   `json:"token_sign_key"`
	TokenIssuer    string   `json:"token_issuer"`
	TokenDuration  Duration `json:"token_duration"`
	RequestTimeout Duration `json:"request_timeout"`
	Debug          bool     `json:"debug"`
	BcryptCost     int      `json:"bcrypt_cost"`
	AMQPURL        string   `json:"amqp_url"`
	Queue          string   `json:"queue"`
}

// parseJSON reads the JSON file at cfg.JSONFilePath (if set) and merges its
// values into cfg. Values already present in cfg take priority.
func parseJSON(cfg *StructuredConfig) error {
	if cfg.JSONFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(cfg.JSONFilePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrJSONFileReading, err)
	}

	var fileCfg jsonConfig
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("%w: %w", ErrJSONParsing, err)
	}

	jsonStructured := &StructuredConfig{
		App: App{
			Debug:         fileCfg.Debug,
			TokenSignKey:  fileCfg.TokenSignKey,
			TokenIssuer:   fileCfg.TokenIssuer,
			TokenDuration: fileCfg.TokenDuration.Duration,
			BcryptCost:    fileCfg.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: fileCfg.DatabaseDriver,
				DSN:    fileCfg.DatabaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    fileCfg.Address,
			RequestTimeout: fileCfg.RequestTimeout.Duration,
		},
		Events: Events{
			AMQPURL: fileCfg.AMQPURL,
			Queue:   fileCfg.Queue,
		},
	}

	return mergeConfigs(cfg, jsonStructured)
}
