package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/lealogineo/internal/domain/credential"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/rpggio/lealogineo/internal/tabular"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a configuration value that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvConfigPath    = "LEALOGINEO_CONFIG_PATH"
	EnvLogLevel      = "LEALOGINEO_LOG_LEVEL"
	EnvLogPath       = "LEALOGINEO_LOG_PATH"
	EnvOutputPath    = "LEALOGINEO_OUTPUT_PATH"
	EnvPDFOutputPath = "LEALOGINEO_PDF_OUTPUT_PATH"
)

// Config defines tool configuration.
type Config struct {
	Roster  RosterConfig  `yaml:"roster"`
	Letters LettersConfig `yaml:"letters"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// RosterConfig configures the roster conversion.
type RosterConfig struct {
	SourceFile       string        `yaml:"source_file"`
	PrimaryKey       string        `yaml:"primary_key"`
	EmitProgramGroup Toggle        `yaml:"emit_program_group"`
	EmitCohort       Toggle        `yaml:"emit_cohort"`
	EmitSeminars     Toggle        `yaml:"emit_seminars"`
	OutputPath       string        `yaml:"output_path"`
	OutputFormat     string        `yaml:"output_format"`
	CSVDelimiter     string        `yaml:"csv_delimiter"`
	CSVEncoding      string        `yaml:"csv_encoding"`
	Category         string        `yaml:"category"`
	Columns          ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig overrides source column names. Empty entries keep the default.
type ColumnsConfig struct {
	PrimaryID    string `yaml:"primary_id"`
	SecondaryID  string `yaml:"secondary_id"`
	Surname      string `yaml:"surname"`
	GivenName    string `yaml:"given_name"`
	ProgramCode  string `yaml:"program_code"`
	ProgramGroup string `yaml:"program_group"`
	StartDate    string `yaml:"start_date"`
	CoreSeminar  string `yaml:"core_seminar"`
	Subject1     string `yaml:"subject_1"`
	Subject2     string `yaml:"subject_2"`
}

// LettersConfig configures credential letter generation.
type LettersConfig struct {
	CSVFile         string                `yaml:"csv_file"`
	XMLFile         string                `yaml:"xml_file"`
	CSVDelimiter    string                `yaml:"csv_delimiter"`
	CSVEncoding     string                `yaml:"csv_encoding"`
	OutputPath      string                `yaml:"output_path"`
	PortalLink      string                `yaml:"portal_link"`
	SupportName     string                `yaml:"support_name"`
	SupportMail     string                `yaml:"support_mail"`
	Individual      Toggle                `yaml:"individual"`
	Collective      Toggle                `yaml:"collective"`
	DefaultCategory string                `yaml:"default_category"`
	DefaultSeminar  string                `yaml:"default_seminar"`
	Workers         int                   `yaml:"workers"`
	XML             credential.TagMapping `yaml:"xml"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type MetricsConfig struct {
	// Textfile is the node exporter textfile written after each run.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Roster: RosterConfig{
			PrimaryKey:       string(roster.PrimaryKeyLEAID),
			EmitProgramGroup: true,
			EmitCohort:       true,
			EmitSeminars:     true,
			OutputPath:       "output",
			OutputFormat:     string(roster.FormatXLSX),
			CSVDelimiter:     ",",
			CSVEncoding:      tabular.EncodingUTF8,
			Category:         roster.DefaultCategory,
		},
		Letters: LettersConfig{
			CSVDelimiter:    ",",
			CSVEncoding:     tabular.EncodingUTF8,
			OutputPath:      "pdf-files",
			Individual:      true,
			Collective:      false,
			DefaultCategory: credential.CategoryStaff,
			DefaultSeminar:  letter.DefaultSeminar,
			Workers:         4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to LEALOGINEO_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv(EnvLogPath); logPath != "" {
		cfg.Log.Path = logPath
	}
	if out := os.Getenv(EnvOutputPath); out != "" {
		cfg.Roster.OutputPath = out
	}
	if out := os.Getenv(EnvPDFOutputPath); out != "" {
		cfg.Letters.OutputPath = out
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse config file: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Write stores cfg as YAML at path, creating the parent directory.
func Write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	if _, err := roster.ParsePrimaryKey(c.Roster.PrimaryKey); err != nil {
		return fmt.Errorf("%w: roster.primary_key: %w", ErrInvalidConfig, err)
	}
	if _, err := roster.ParseOutputFormat(c.Roster.OutputFormat); err != nil {
		return fmt.Errorf("%w: roster.output_format: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Roster.CSVOptions(); err != nil {
		return err
	}
	if _, err := c.Letters.CSVOptions(); err != nil {
		return err
	}
	if c.Letters.Workers <= 0 {
		return fmt.Errorf("%w: letters.workers must be positive, got %d", ErrInvalidConfig, c.Letters.Workers)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// Rules builds the classifier rule set.
func (c RosterConfig) Rules() (roster.Rules, error) {
	key, err := roster.ParsePrimaryKey(c.PrimaryKey)
	if err != nil {
		return roster.Rules{}, fmt.Errorf("%w: roster.primary_key: %w", ErrInvalidConfig, err)
	}
	return roster.Rules{
		PrimaryKey: key,
		Shape: roster.OutputShape{
			ProgramGroup: bool(c.EmitProgramGroup),
			Cohort:       bool(c.EmitCohort),
			Seminars:     bool(c.EmitSeminars),
		},
		Columns:  roster.Columns(c.Columns).WithDefaults(),
		Category: c.Category,
	}, nil
}

// Format returns the parsed output format.
func (c RosterConfig) Format() (roster.OutputFormat, error) {
	f, err := roster.ParseOutputFormat(c.OutputFormat)
	if err != nil {
		return "", fmt.Errorf("%w: roster.output_format: %w", ErrInvalidConfig, err)
	}
	return f, nil
}

// CSVOptions returns the CSV dialect of .csv roster sources and outputs.
func (c RosterConfig) CSVOptions() (tabular.CSVOptions, error) {
	return csvOptions("roster", c.CSVDelimiter, c.CSVEncoding)
}

// Source picks the credential export to read. The XML file wins when both
// are set.
func (c LettersConfig) Source() string {
	if strings.TrimSpace(c.XMLFile) != "" {
		return c.XMLFile
	}
	return c.CSVFile
}

// CSVOptions returns the parsed CSV dialect of the credential export.
func (c LettersConfig) CSVOptions() (tabular.CSVOptions, error) {
	return csvOptions("letters", c.CSVDelimiter, c.CSVEncoding)
}

func csvOptions(section, delimiter, encoding string) (tabular.CSVOptions, error) {
	delim, err := tabular.ParseDelimiter(delimiter)
	if err != nil {
		return tabular.CSVOptions{}, fmt.Errorf("%w: %s.csv_delimiter: %w", ErrInvalidConfig, section, err)
	}
	enc, err := tabular.ParseEncoding(encoding)
	if err != nil {
		return tabular.CSVOptions{}, fmt.Errorf("%w: %s.csv_encoding: %w", ErrInvalidConfig, section, err)
	}
	return tabular.CSVOptions{Delimiter: delim, Encoding: enc}, nil
}

// Request builds a letter generation request.
func (c LettersConfig) Request() letter.GenerateRequest {
	return letter.GenerateRequest{
		SourcePath: c.Source(),
		OutputDir:  c.OutputPath,
		Mode: letter.Mode{
			Individual: bool(c.Individual),
			Collective: bool(c.Collective),
		},
		Mapping: c.XML,
		Letterhead: letter.Letterhead{
			PortalLink:  c.PortalLink,
			SupportName: c.SupportName,
			SupportMail: c.SupportMail,
		},
		DefaultCategory: c.DefaultCategory,
		DefaultSeminar:  c.DefaultSeminar,
		Workers:         c.Workers,
	}
}
