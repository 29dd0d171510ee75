package models

import "strings"

// Settings field keys. Each key doubles as the local-cache key and the wire
// key in remote payloads. The set is closed: writes carrying any other key
// are dropped silently.
const (
	KeyLLMModel         = "LLM_MODEL"
	KeyLLMBaseURL       = "LLM_BASE_URL"
	KeyAgent            = "AGENT"
	KeyLanguage         = "LANGUAGE"
	KeyLLMAPIKey        = "LLM_API_KEY"
	KeyConfirmationMode = "CONFIRMATION_MODE"
	KeySecurityAnalyzer = "SECURITY_ANALYZER"
)

// Reserved and legacy local-cache keys. The legacy keys exist only so the
// migration engine can move their values forward and delete them.
const (
	KeySettingsVersion  = "SETTINGS_VERSION"
	KeyCustomLLMModel   = "CUSTOM_LLM_MODEL"
	KeyUsingCustomModel = "USING_CUSTOM_MODEL"
	KeyLegacyToken      = "token"
)

// Settings is the user-configurable client configuration. An effective
// Settings value is always fully populated; defaulting guarantees totality.
type Settings struct {
	LLMModel         string `json:"LLM_MODEL"`
	LLMBaseURL       string `json:"LLM_BASE_URL"`
	Agent            string `json:"AGENT"`
	Language         string `json:"LANGUAGE"`
	LLMAPIKey        string `json:"LLM_API_KEY"`
	ConfirmationMode bool   `json:"CONFIRMATION_MODE"`
	SecurityAnalyzer string `json:"SECURITY_ANALYZER"`
}

// PartialSettings is a sparse update. Values may be string, bool (for
// CONFIRMATION_MODE) or nil; nil normalizes to the empty string.
type PartialSettings map[string]any

// DefaultSettings returns the built-in configuration used when neither the
// remote store nor the local cache has a value for a field.
func DefaultSettings() Settings {
	return Settings{
		LLMModel:         "anthropic/claude-3-5-sonnet-20241022",
		LLMBaseURL:       "",
		Agent:            "CodeActAgent",
		Language:         "en",
		LLMAPIKey:        "",
		ConfirmationMode: false,
		SecurityAnalyzer: "",
	}
}

// KnownKeys lists the settings field keys in declaration order.
func KnownKeys() []string {
	return []string{
		KeyLLMModel,
		KeyLLMBaseURL,
		KeyAgent,
		KeyLanguage,
		KeyLLMAPIKey,
		KeyConfirmationMode,
		KeySecurityAnalyzer,
	}
}

// IsKnownKey reports whether key names a settings field.
func IsKnownKey(key string) bool {
	switch key {
	case KeyLLMModel, KeyLLMBaseURL, KeyAgent, KeyLanguage,
		KeyLLMAPIKey, KeyConfirmationMode, KeySecurityAnalyzer:
		return true
	}
	return false
}

// ApplyPartial merges a partial update onto s. Unknown keys are dropped,
// nil values become the empty string and string values are trimmed.
// CONFIRMATION_MODE accepts a bool or the strings "true"/"false".
func ApplyPartial(s *Settings, partial PartialSettings) {
	for key, raw := range partial {
		if !IsKnownKey(key) {
			continue
		}
		if key == KeyConfirmationMode {
			switch v := raw.(type) {
			case bool:
				s.ConfirmationMode = v
			case string:
				s.ConfirmationMode = strings.TrimSpace(v) == "true"
			default:
				s.ConfirmationMode = false
			}
			continue
		}
		value := ""
		if str, ok := raw.(string); ok {
			value = strings.TrimSpace(str)
		}
		switch key {
		case KeyLLMModel:
			s.LLMModel = value
		case KeyLLMBaseURL:
			s.LLMBaseURL = value
		case KeyAgent:
			s.Agent = value
		case KeyLanguage:
			s.Language = value
		case KeyLLMAPIKey:
			s.LLMAPIKey = value
		case KeySecurityAnalyzer:
			s.SecurityAnalyzer = value
		}
	}
}
