package config

import (
	"fmt"
	"os"
	"strings"

	"pitchside/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeTranscription()
	c.normalizeLLM()
	c.normalizeEntityRecognition()
	c.normalizeAdvertising()
	c.normalizeAPI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscriptCacheDir) == "" {
		c.Paths.TranscriptCacheDir = defaultTranscriptCacheDir
	}
	if c.Paths.TranscriptCacheDir, err = expandPath(c.Paths.TranscriptCacheDir); err != nil {
		return fmt.Errorf("paths.transcript_cache_dir: %w", err)
	}
	if c.Paths.ProfileOverrides, err = expandPath(strings.TrimSpace(c.Paths.ProfileOverrides)); err != nil {
		return fmt.Errorf("paths.profile_overrides: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	raw := strings.TrimSpace(c.Analysis.Language)
	if raw == "" {
		raw = defaultLanguage
	}
	// Unknown names are left as-is so Validate can report them.
	if code := language.ToISO2(raw); code != "" {
		raw = code
	}
	c.Analysis.Language = raw
}

func (c *Config) normalizeTranscription() {
	c.Transcription.WhisperXModel = strings.TrimSpace(c.Transcription.WhisperXModel)
	if c.Transcription.WhisperXModel == "" {
		c.Transcription.WhisperXModel = defaultWhisperXModel
	}
	c.Transcription.WhisperXVADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.WhisperXVADMethod))
	if c.Transcription.WhisperXVADMethod == "" {
		c.Transcription.WhisperXVADMethod = defaultWhisperXVADMethod
	}
	c.Transcription.WhisperXHuggingFace = strings.TrimSpace(c.Transcription.WhisperXHuggingFace)
	if c.Transcription.WhisperXHuggingFace == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			c.Transcription.WhisperXHuggingFace = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Transcription.WhisperXHuggingFace = strings.TrimSpace(value)
		}
	}
	if c.Transcription.TimeoutSeconds <= 0 {
		c.Transcription.TimeoutSeconds = defaultTranscriptionTimeout
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeEntityRecognition() {
	c.EntityRecognition.APIKey = strings.TrimSpace(c.EntityRecognition.APIKey)
	if c.EntityRecognition.APIKey == "" {
		if value, ok := os.LookupEnv("PITCHSIDE_NLP_API_KEY"); ok {
			c.EntityRecognition.APIKey = strings.TrimSpace(value)
		}
	}
	c.EntityRecognition.BaseURL = strings.TrimSpace(c.EntityRecognition.BaseURL)
	c.EntityRecognition.Model = strings.TrimSpace(c.EntityRecognition.Model)
	if c.EntityRecognition.TimeoutSeconds <= 0 {
		c.EntityRecognition.TimeoutSeconds = defaultNERTimeoutSeconds
	}
	if c.EntityRecognition.RequestsPerMinute <= 0 {
		c.EntityRecognition.RequestsPerMinute = defaultNERRequestsPerMinute
	}
}

func (c *Config) normalizeAdvertising() {
	if c.Advertising.DisplaySeconds <= 0 {
		c.Advertising.DisplaySeconds = defaultAdDisplaySeconds
	}
	c.Advertising.FeaturedPlayer = strings.ToLower(strings.TrimSpace(c.Advertising.FeaturedPlayer))
	if c.Advertising.FeaturedPlayer == "" {
		c.Advertising.FeaturedPlayer = defaultFeaturedPlayer
	}
}

func (c *Config) normalizeAPI() {
	c.API.Bind = strings.TrimSpace(c.API.Bind)
	if c.API.Bind == "" {
		c.API.Bind = defaultAPIBind
	}
	c.API.Token = strings.TrimSpace(c.API.Token)
	if c.API.Token == "" {
		if value, ok := os.LookupEnv("PITCHSIDE_API_TOKEN"); ok {
			c.API.Token = strings.TrimSpace(value)
		}
	}
	if c.API.MaxBodyBytes <= 0 {
		c.API.MaxBodyBytes = defaultAPIMaxBodyBytes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
