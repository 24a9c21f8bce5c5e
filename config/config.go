package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "CATALOG_CONFIG_FILE"
	envPrefix         = "CATALOG"
	portEnvName       = "PORT"
)

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

func (t tlsFiles) Enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

type topics struct {
	ProductEvents string `mapstructure:"product_events"`
}

type broker struct {
	SeedBrokers        []string      `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string      `mapstructure:"schema_registry_urls"`
	TLS                tlsFiles      `mapstructure:"tls"`
	Topics             topics        `mapstructure:"topics"`
	EventTimeout       time.Duration `mapstructure:"event_timeout"`
}

// Enabled reports whether product events are published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type mongo struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type payment struct {
	KeyID     string        `mapstructure:"key_id"`
	KeySecret string        `mapstructure:"key_secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	LogFile        string        `mapstructure:"log_file"`
	HTTPServerAddr string        `mapstructure:"http_server_addr"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout"`
	Mongo          mongo         `mapstructure:"mongo"`
	Payment        payment       `mapstructure:"payment"`
	Broker         broker        `mapstructure:"broker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("http_server_addr", ":3000")
	v.SetDefault("handler_timeout", 15*time.Second)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "catalog")
	v.SetDefault("payment.key_id", "")
	v.SetDefault("payment.key_secret", "")
	v.SetDefault("payment.base_url", "https://api.razorpay.com")
	v.SetDefault("payment.timeout", 10*time.Second)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
	v.SetDefault("broker.topics.product_events", "product-events")
	v.SetDefault("broker.event_timeout", 2*time.Second)
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("mongo.uri", "DATABASE_URL", "CATALOG_MONGO_URI")
	_ = v.BindEnv("payment.key_id", "RAZORPAY_KEY_ID", "CATALOG_PAYMENT_KEY_ID")
	_ = v.BindEnv(
		"payment.key_secret", "RAZORPAY_KEY_SECRET", "CATALOG_PAYMENT_KEY_SECRET",
	)
}

func Load() Config {
	_ = godotenv.Load()

	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML file at path if it exists, then applies the
// environment overrides.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	v.SetConfigFile(path)
	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, err
	}

	if port, ok := os.LookupEnv(portEnvName); ok && port != "" {
		cfg.HTTPServerAddr = ":" + port
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "./config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFile=%q
	HTTPServerAddr=%q
	HandlerTimeout=%s

	Mongo:
	URI=%q
	Database=%q

	Payment:
	KeyID=%q
	KeySecret=%q
	BaseURL=%q
	Timeout=%s

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	EventTimeout=%s
	Topics:
		ProductEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.HTTPServerAddr,
		c.HandlerTimeout,
		maskURI(c.Mongo.URI),
		c.Mongo.Database,
		c.Payment.KeyID,
		mask(c.Payment.KeySecret),
		c.Payment.BaseURL,
		c.Payment.Timeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled(),
		c.Broker.EventTimeout,
		c.Broker.Topics.ProductEvents,
	)
}

// maskURI hides the userinfo password of a connection string.
func maskURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return uri
	}
	user, _, hasPass := strings.Cut(userinfo, ":")
	if !hasPass {
		return uri
	}
	return scheme + "://" + user + ":***@" + host
}
