package config

const (
	defaultConfigPath             = "~/.config/pitchside/config.toml"
	defaultLogDir                 = "~/.local/share/pitchside/logs"
	defaultWorkDir                = "~/.local/share/pitchside/work"
	defaultTranscriptCacheDir     = "~/.local/share/pitchside/cache/transcripts"
	defaultProfileOverrides       = "~/.config/pitchside/profiles.yaml"
	defaultLanguage               = "en"
	defaultWindow                 = 50
	defaultWhisperXModel          = "large-v3"
	defaultWhisperXVADMethod      = "silero"
	defaultTranscriptionTimeout   = 300
	defaultQuietThresholdDB       = -30.0
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMReferer             = "https://github.com/pitchside/pitchside"
	defaultLLMTitle               = "Pitchside"
	defaultLLMTimeoutSeconds      = 60
	defaultEntityRecognitionTitle = "Pitchside Entity Recognition"
	defaultMinConfidence          = 0.8
	defaultNERTimeoutSeconds      = 10
	defaultNERRequestsPerMinute   = 60
	defaultAdDisplaySeconds       = 6
	defaultFeaturedPlayer         = "messi"
	defaultAPIBind                = "127.0.0.1:7480"
	defaultAPIMaxBodyBytes        = 1 << 20
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:             defaultLogDir,
			WorkDir:            defaultWorkDir,
			TranscriptCacheDir: defaultTranscriptCacheDir,
			ProfileOverrides:   defaultProfileOverrides,
		},
		Analysis: Analysis{
			Language: defaultLanguage,
			Window:   defaultWindow,
		},
		Transcription: Transcription{
			WhisperXModel:     defaultWhisperXModel,
			WhisperXVADMethod: defaultWhisperXVADMethod,
			TimeoutSeconds:    defaultTranscriptionTimeout,
			CacheEnabled:      true,
			QuietThresholdDB:  defaultQuietThresholdDB,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		EntityRecognition: EntityRecognition{
			MinConfidence:     defaultMinConfidence,
			TimeoutSeconds:    defaultNERTimeoutSeconds,
			RequestsPerMinute: defaultNERRequestsPerMinute,
		},
		Advertising: Advertising{
			DisplaySeconds: defaultAdDisplaySeconds,
			FeaturedPlayer: defaultFeaturedPlayer,
		},
		API: API{
			Bind:           defaultAPIBind,
			MaxBodyBytes:   defaultAPIMaxBodyBytes,
			MetricsEnabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
