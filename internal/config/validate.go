package config

import (
	"errors"
	"fmt"
	"strings"

	"pitchside/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateEntityRecognition(); err != nil {
		return err
	}
	if err := c.validateAdvertising(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAnalysis() error {
	if !language.IsSupported(c.Analysis.Language) {
		return fmt.Errorf("analysis.language %q is not supported (use one of %s)", c.Analysis.Language, strings.Join(language.Supported(), ", "))
	}
	if c.Analysis.Window < 0 {
		return errors.New("analysis.window must be >= 0")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.WhisperXVADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.whisperx_vad_method must be silero or pyannote, got %q", c.Transcription.WhisperXVADMethod)
	}
	if c.Transcription.WhisperXVADMethod == "pyannote" && c.Transcription.WhisperXHuggingFace == "" {
		return errors.New("transcription.whisperx_hf_token must be set when whisperx_vad_method is pyannote (or set HF_TOKEN)")
	}
	if c.Transcription.QuietThresholdDB > 0 {
		return errors.New("transcription.quiet_threshold_db must be <= 0")
	}
	return ensurePositiveMap(map[string]int{
		"transcription.timeout_seconds": c.Transcription.TimeoutSeconds,
		"llm.timeout_seconds":           c.LLM.TimeoutSeconds,
	})
}

func (c *Config) validateEntityRecognition() error {
	cfg := c.EntityRecognition
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return errors.New("entity_recognition.min_confidence must be between 0 and 1")
	}
	if !cfg.Enabled {
		return nil
	}
	if c.EntityRecognitionLLM().APIKey == "" {
		return errors.New("entity_recognition.api_key must be set when entity_recognition.enabled is true (or set PITCHSIDE_NLP_API_KEY or OPENROUTER_API_KEY)")
	}
	return nil
}

func (c *Config) validateAdvertising() error {
	if c.Advertising.DisplaySeconds <= 0 {
		return errors.New("advertising.display_seconds must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if !strings.Contains(c.API.Bind, ":") {
		return fmt.Errorf("api.bind must be host:port, got %q", c.API.Bind)
	}
	if c.API.MaxBodyBytes <= 0 {
		return errors.New("api.max_body_bytes must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
