package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// DataDir holds the dataset files when BaseURL is empty.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir" validate:"required"`
	// BaseURL, when set, is the prefix datasets are fetched from over HTTP.
	BaseURL        string `mapstructure:"base_url" yaml:"base_url,omitempty" validate:"omitempty,url"`
	PlayersFile    string `mapstructure:"players_file" yaml:"players_file" validate:"required"`
	EducationFile  string `mapstructure:"education_file" yaml:"education_file" validate:"required"`
	LoadTimeoutSec int    `mapstructure:"load_timeout_sec" yaml:"load_timeout_sec" validate:"gte=0"`

	// Density estimation
	DensityPoints     int                `mapstructure:"density_points" yaml:"density_points" validate:"min=2"`
	Bandwidths        map[string]float64 `mapstructure:"bandwidths" yaml:"bandwidths" validate:"dive,gt=0"`
	DensityCategories []string           `mapstructure:"density_categories" yaml:"density_categories" validate:"min=1,dive,required"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks value ranges and formats.
func (c *Global) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// LoadTimeout returns the dataset load timeout; zero means none.
func (c *Global) LoadTimeout() time.Duration {
	return time.Duration(c.LoadTimeoutSec) * time.Second
}

// DataLocation is the directory or base URL datasets are read from.
func (c *Global) DataLocation() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return c.DataDir
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".statboard"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.statboard/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied
// by the caller afterwards.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STATBOARD")
	v.AutomaticEnv()

	v.SetDefault("data_dir", ".")
	v.SetDefault("base_url", "")
	v.SetDefault("players_file", "PlayersBBall.csv")
	v.SetDefault("education_file", "Education_Income.csv")
	v.SetDefault("load_timeout_sec", 30)
	v.SetDefault("density_points", 51)
	v.SetDefault("bandwidths", map[string]float64{"height_in": 2, "weight": 10})
	v.SetDefault("density_categories", []string{"C", "F"})
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// A missing file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns a single key from its string form, as used by `config set`.
// bandwidths entries are addressed as bandwidths.<measure>.
func (c *Global) Set(key, val string) error {
	switch key {
	case "data_dir":
		c.DataDir = val
	case "base_url":
		c.BaseURL = val
	case "players_file":
		c.PlayersFile = val
	case "education_file":
		c.EducationFile = val
	case "load_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for load_timeout_sec: %w", err)
		}
		c.LoadTimeoutSec = i
	case "density_points":
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid int for density_points: %w", err)
		}
		c.DensityPoints = i
	case "density_categories":
		var cats []string
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cats = append(cats, s)
			}
		}
		c.DensityCategories = cats
	case "log_level":
		c.LogLevel = strings.ToLower(val)
	default:
		measure, ok := strings.CutPrefix(key, "bandwidths.")
		if !ok || measure == "" {
			return fmt.Errorf("unknown key: %s", key)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid float for %s: %w", key, err)
		}
		if c.Bandwidths == nil {
			c.Bandwidths = map[string]float64{}
		}
		c.Bandwidths[measure] = f
	}
	return c.Validate()
}

// Lines renders the effective configuration as "key: value" lines.
func (c *Global) Lines() []string {
	lines := []string{
		"data_dir: " + c.DataDir,
	}
	if c.BaseURL != "" {
		lines = append(lines, "base_url: "+c.BaseURL)
	}
	lines = append(lines,
		"players_file: "+c.PlayersFile,
		"education_file: "+c.EducationFile,
		fmt.Sprintf("load_timeout_sec: %d", c.LoadTimeoutSec),
		fmt.Sprintf("density_points: %d", c.DensityPoints),
		"density_categories: "+strings.Join(c.DensityCategories, ","),
	)
	measures := make([]string, 0, len(c.Bandwidths))
	for m := range c.Bandwidths {
		measures = append(measures, m)
	}
	sort.Strings(measures)
	for _, m := range measures {
		lines = append(lines, fmt.Sprintf("bandwidths.%s: %g", m, c.Bandwidths[m]))
	}
	return append(lines, "log_level: "+c.LogLevel)
}
