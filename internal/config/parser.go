package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Environment variables consulted by Load.
const (
	EnvEndpoint       = "RANKVIEW_ENDPOINT"
	EnvRequestTimeout = "RANKVIEW_REQUEST_TIMEOUT"
	EnvLogLevel       = "RANKVIEW_LOG_LEVEL"
	EnvLogFile        = "RANKVIEW_LOG_FILE"
	EnvServerAddr     = "RANKVIEW_SERVER_ADDR"
)

// LoadOptions locates configuration sources.
type LoadOptions struct {
	// Path is an explicit config file; it must exist. When empty the
	// default path is used if present.
	Path string
	// EnvFile is a dotenv file; missing files are ignored. Defaults to ".env".
	EnvFile string
	// Getenv overrides os.Getenv, for tests.
	Getenv func(string) string
}

// Load builds the configuration from defaults, the YAML file, the dotenv
// file and the environment, in increasing precedence. The result is not
// validated so callers can apply flag overrides first.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		if err := ParseFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.NewParseError(envFile, 0, err)
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFile decodes a YAML config file over cfg. Unknown keys are rejected.
func ParseFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewParseError(path, 0, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewParseError(path, extractLine(err), err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	if v := lookup(EnvEndpoint); v != "" {
		cfg.Endpoint = strings.TrimSpace(v)
	}
	if v := lookup(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewValidationError(EnvRequestTimeout, fmt.Sprintf("invalid duration %q", v), err)
		}
		cfg.RequestTimeout = d
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := lookup(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
	if v := lookup(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
