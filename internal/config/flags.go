package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// flagArgs returns the command-line arguments to parse. Overridable in tests.
var flagArgs = func() []string {
	return os.Args[1:]
}

// NetAddress is a "host:port" pair usable as a flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// String returns the address in "host:port" form.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses a "host:port" string into the receiver. Implements flag.Value.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found {
		return errors.New("need address in a form host:port")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", portStr, err)
	}

	a.Host = host
	a.Port = port

	return nil
}

// parseFlags populates cfg from command-line flags. Flags left at their zero
// value do not override values already present in cfg.
func parseFlags(cfg *StructuredConfig) error {
	var (
		address        NetAddress
		dsn            string
		driver         string
		jsonPath       string
		tokenSignKey   string
		tokenIssuer    string
		tokenDuration  time.Duration
		requestTimeout time.Duration
		debug          bool
		bcryptCost     int
		amqpURL        string
		queue          string
	)

	fs := flag.NewFlagSet("parkings-api", flag.ContinueOnError)
	fs.Var(&address, "a", "address and port to run server (host:port)")
	fs.StringVar(&dsn, "d", "", "database connection string")
	fs.StringVar(&driver, "driver", "", "database driver: pgx or sqlite3")
	fs.StringVar(&jsonPath, "c", "", "path to JSON config file")
	fs.StringVar(&jsonPath, "config", "", "path to JSON config file (same as -c)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "secret key for signing bearer tokens")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "issuer claim for bearer tokens")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "token lifetime, e.g. 24h")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "per-request timeout, e.g. 30s")
	fs.BoolVar(&debug, "debug", false, "enable debug detail in responses and SQL logging")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "bcrypt cost factor for password hashing")
	fs.StringVar(&amqpURL, "amqp-url", "", "AMQP broker URL for resource-change events")
	fs.StringVar(&queue, "queue", "", "queue name for resource-change events")

	if err := fs.Parse(flagArgs()); err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParsing, err)
	}

	flagCfg := &StructuredConfig{
		App: App{
			Debug:         debug,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			BcryptCost:    bcryptCost,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    dsn,
			},
		},
		Server: Server{
			HTTPAddress:    address.String(),
			RequestTimeout: requestTimeout,
		},
		Events: Events{
			AMQPURL: amqpURL,
			Queue:   queue,
		},
		JSONFilePath: jsonPath,
	}

	return mergeConfigs(cfg, flagCfg)
}
