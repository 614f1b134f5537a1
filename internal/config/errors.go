package config

import "errors"

var (
	// ErrEnvParsing indicates that environment variables could not be parsed.
	ErrEnvParsing = errors.New("error parsing environment variables")
	// ErrFlagParsing indicates that command-line flags could not be parsed.
	ErrFlagParsing = errors.New("error parsing command-line flags")
	// ErrJSONFileReading indicates that the JSON config file could not be read.
	ErrJSONFileReading = errors.New("error reading JSON config file")
	// ErrJSONParsing indicates that the JSON config file is malformed.
	ErrJSONParsing = errors.New("error parsing JSON config file")
	// ErrConfigMerging indicates a failure combining configuration sources.
	ErrConfigMerging = errors.New("error merging configuration sources")
	// ErrNoTokenSignKey indicates the token signing key is missing.
	ErrNoTokenSignKey = errors.New("token sign key is required: set APP_TOKEN_SIGN_KEY or -token-sign-key")
	// ErrNoDatabaseDSN indicates the database connection string is missing.
	ErrNoDatabaseDSN = errors.New("database DSN is required: set STORAGE_DB_DATABASE_URI or -d")
	// ErrUnknownDriver indicates an unsupported database driver name.
	ErrUnknownDriver = errors.New("unknown database driver: must be pgx or sqlite3")
)
