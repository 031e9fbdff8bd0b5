package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir             string `toml:"log_dir"`
	WorkDir            string `toml:"work_dir"`
	TranscriptCacheDir string `toml:"transcript_cache_dir"`
	ProfileOverrides   string `toml:"profile_overrides"`
}

// Analysis contains commentary engine settings.
type Analysis struct {
	// Language is the default commentary language ("en" or "es").
	Language string `toml:"language"`
	// Window is the proximity window in characters.
	Window int `toml:"window"`
}

// Transcription contains WhisperX and audio diagnostics settings.
type Transcription struct {
	WhisperXModel       string  `toml:"whisperx_model"`
	WhisperXCUDAEnabled bool    `toml:"whisperx_cuda_enabled"`
	WhisperXVADMethod   string  `toml:"whisperx_vad_method"`
	WhisperXHuggingFace string  `toml:"whisperx_hf_token"`
	TimeoutSeconds      int     `toml:"timeout_seconds"`
	CacheEnabled        bool    `toml:"cache_enabled"`
	QuietThresholdDB    float64 `toml:"quiet_threshold_db"`
}

// LLM contains shared LLM connection settings.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// EntityRecognition configures the optional cloud entity recognizer used for
// advertisement targeting. Connection fields fall back to [llm].
type EntityRecognition struct {
	Enabled           bool    `toml:"enabled"`
	APIKey            string  `toml:"api_key"`
	BaseURL           string  `toml:"base_url"`
	Model             string  `toml:"model"`
	MinConfidence     float64 `toml:"min_confidence"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerMinute int     `toml:"requests_per_minute"`
}

// Advertising contains merchandise placement settings.
type Advertising struct {
	DisplaySeconds int    `toml:"display_seconds"`
	FeaturedPlayer string `toml:"featured_player"`
}

// API contains HTTP API settings.
type API struct {
	Bind           string `toml:"bind"`
	Token          string `toml:"token"`
	MaxBodyBytes   int64  `toml:"max_body_bytes"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pitchside.
//
// Configuration sections by subsystem:
//   - Paths: log, scratch, and transcript cache directories plus the
//     profile overrides file
//   - Analysis: default language and proximity window
//   - Transcription: WhisperX model, device, and timeouts
//   - LLM: shared LLM connection settings
//   - EntityRecognition: optional cloud entity recognition for ad targeting
//   - Advertising: merchandise placement settings
//   - API: HTTP API bind address and auth
//   - Logging: log format and level
type Config struct {
	Paths             Paths             `toml:"paths"`
	Analysis          Analysis          `toml:"analysis"`
	Transcription     Transcription     `toml:"transcription"`
	LLM               LLM               `toml:"llm"`
	EntityRecognition EntityRecognition `toml:"entity_recognition"`
	Advertising       Advertising       `toml:"advertising"`
	API               API               `toml:"api"`
	Logging           Logging           `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults
// and environment values are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if err := loadDotEnv(resolvedPath); err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("pitchside.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories pitchside writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.WorkDir}
	if c.Transcription.CacheEnabled {
		dirs = append(dirs, c.Paths.TranscriptCacheDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

// TranscriptionTimeout returns the caller-side bound on one transcription job.
func (c *Config) TranscriptionTimeout() time.Duration {
	return time.Duration(c.Transcription.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains common LLM settings used across features.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// EntityRecognitionLLM returns the LLM settings for entity recognition.
// Falls back to [llm] settings when not explicitly configured.
func (c *Config) EntityRecognitionLLM() LLMConfig {
	cfg := LLMConfig{
		APIKey:         strings.TrimSpace(c.EntityRecognition.APIKey),
		BaseURL:        strings.TrimSpace(c.EntityRecognition.BaseURL),
		Model:          strings.TrimSpace(c.EntityRecognition.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          defaultEntityRecognitionTitle,
		TimeoutSeconds: c.EntityRecognition.TimeoutSeconds,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(c.LLM.APIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	}
	if cfg.Model == "" {
		cfg.Model = strings.TrimSpace(c.LLM.Model)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = c.LLM.TimeoutSeconds
	}
	return cfg
}
