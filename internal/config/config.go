package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"market-report/internal/errors"
)

type Config struct {
	Sources           Sources           `yaml:"sources"`
	Databases         Databases         `yaml:"databases"`
	BenchmarkSettings BenchmarkSettings `yaml:"benchmark_settings"`
	Report            ReportConfig      `yaml:"report"`
	Logger            LoggerConfig      `yaml:"logger"`
	Metrics           MetricsConfig     `yaml:"metrics"`
	Teardown          bool              `yaml:"teardown"`
}

type Sources struct {
	Brands       string `yaml:"brands"`
	Independents string `yaml:"independents"`
	Population   string `yaml:"population"`
}

// Databases selects the store driver and holds one DSN per backend.
type Databases struct {
	Driver   string `yaml:"driver"`
	SQLite   string `yaml:"sqlite"`
	Postgres string `yaml:"postgres"`
	MySQL    string `yaml:"mysql"`
	Mongo    string `yaml:"mongo"`
}

type BenchmarkSettings struct {
	Iterations int `yaml:"iterations"`
}

type ReportConfig struct {
	// Limit caps the rows printed for the classification and efficiency
	// reports. Zero prints everything.
	Limit   int      `yaml:"limit"`
	Formats []string `yaml:"formats"`
	Dir     string   `yaml:"dir"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	Prefix    string `yaml:"prefix"`
	PathStyle bool   `yaml:"path_style"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

var (
	validDrivers    = []string{"sqlite", "postgres", "mysql", "mongo"}
	validFormats    = []string{"csv", "json", "xlsx"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
)

func Default() *Config {
	return &Config{
		Sources: Sources{
			Brands:       "Top250.csv",
			Independents: "Independence100.csv",
			Population:   "us_pop_by_state_2020.csv",
		},
		Databases: Databases{
			Driver: "sqlite",
			SQLite: ":memory:",
		},
		BenchmarkSettings: BenchmarkSettings{
			Iterations: 1,
		},
		Report: ReportConfig{
			Limit: 10,
			Dir:   "reports",
			S3: S3Config{
				Region: "us-east-1",
				Prefix: "market-report",
			},
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides and validates the result. An empty path skips the
// file.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.ConfigWrap(err, "read config file").WithDetails("%s", path)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, errors.ConfigWrap(err, "parse config file").WithDetails("%s", path)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigIfExists behaves like LoadConfig but falls back to defaults when
// the file does not exist.
func LoadConfigIfExists(path string) (*Config, error) {
	if _, err := os.Stat(path); stderrors.Is(err, fs.ErrNotExist) {
		return LoadConfig("")
	}
	return LoadConfig(path)
}

func (c *Config) applyEnv() {
	c.Databases.Driver = getEnvString("MARKET_DB_DRIVER", c.Databases.Driver)
	c.Databases.SQLite = getEnvString("MARKET_SQLITE_DSN", c.Databases.SQLite)
	c.Databases.Postgres = getEnvString("MARKET_POSTGRES_DSN", c.Databases.Postgres)
	c.Databases.MySQL = getEnvString("MARKET_MYSQL_DSN", c.Databases.MySQL)
	c.Databases.Mongo = getEnvString("MARKET_MONGO_DSN", c.Databases.Mongo)

	c.Logger.Level = getEnvString("LOG_LEVEL", c.Logger.Level)
	c.Logger.Format = getEnvString("LOG_FORMAT", c.Logger.Format)

	c.Report.Dir = getEnvString("MARKET_EXPORT_DIR", c.Report.Dir)
	c.Report.Formats = getEnvStringSlice("MARKET_EXPORT_FORMATS", c.Report.Formats)
	c.Report.S3.Bucket = getEnvString("MARKET_S3_BUCKET", c.Report.S3.Bucket)
	c.Report.S3.Endpoint = getEnvString("MARKET_S3_ENDPOINT", c.Report.S3.Endpoint)
	c.Report.S3.PathStyle = getEnvBool("MARKET_S3_PATH_STYLE", c.Report.S3.PathStyle)

	c.BenchmarkSettings.Iterations = getEnvInt("MARKET_ITERATIONS", c.BenchmarkSettings.Iterations)
	c.Metrics.Textfile = getEnvString("MARKET_METRICS_TEXTFILE", c.Metrics.Textfile)
}

func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return errors.ConfigWrap(err, "invalid configuration")
	}
	return nil
}

func (c *Config) validate() error {
	if !contains(validDrivers, c.Databases.Driver) {
		return fmt.Errorf("invalid database driver %q, must be one of: %s", c.Databases.Driver, strings.Join(validDrivers, ", "))
	}

	if c.Databases.Driver != "sqlite" && c.DSN() == "" {
		return fmt.Errorf("%s DSN cannot be empty", c.Databases.Driver)
	}

	if c.Sources.Brands == "" || c.Sources.Independents == "" || c.Sources.Population == "" {
		return fmt.Errorf("source file paths cannot be empty")
	}

	if c.BenchmarkSettings.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.BenchmarkSettings.Iterations)
	}

	if c.Report.Limit < 0 {
		return fmt.Errorf("report limit cannot be negative, got %d", c.Report.Limit)
	}

	for _, f := range c.Report.Formats {
		if !contains(validFormats, f) {
			return fmt.Errorf("invalid export format %q, must be one of: %s", f, strings.Join(validFormats, ", "))
		}
	}

	if len(c.Report.Formats) > 0 && c.Report.Dir == "" {
		return fmt.Errorf("export directory cannot be empty when formats are set")
	}

	if c.Report.S3.Bucket != "" && len(c.Report.Formats) == 0 {
		return fmt.Errorf("s3 upload requires at least one export format")
	}

	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	return nil
}

// DSN returns the connection string of the selected driver.
func (c *Config) DSN() string {
	switch c.Databases.Driver {
	case "sqlite":
		return c.Databases.SQLite
	case "postgres":
		return c.Databases.Postgres
	case "mysql":
		return c.Databases.MySQL
	case "mongo":
		return c.Databases.Mongo
	}
	return ""
}

// ParseFormats splits a comma list such as "csv, json" into formats.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return ParseFormats(value)
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
