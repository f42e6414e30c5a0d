package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Remote endpoints are injected
// here so nothing in the core carries a baked-in address.
type Config struct {
	// Answer service. Backend selects "http" (the assist endpoint),
	// "vertex" (direct Gemini) or "mock".
	AnswerBackend string        `env:"ASSIST_ANSWER_BACKEND" envDefault:"http"`
	AnswerURL     string        `env:"ASSIST_ANSWER_URL" envDefault:"http://localhost:5000/"`
	AnswerTimeout time.Duration `env:"ASSIST_ANSWER_TIMEOUT" envDefault:"15s"`

	// Transcription service.
	TranscriptionURL     string        `env:"ASSIST_STT_URL" envDefault:"http://localhost:5000"`
	TranscriptionTimeout time.Duration `env:"ASSIST_STT_TIMEOUT" envDefault:"30s"`

	// GCP, used by the firestore store and the vertex answer backend.
	GCPProjectID string `env:"ASSIST_GCP_PROJECT"`
	GCPLocation  string `env:"ASSIST_GCP_LOCATION" envDefault:"us-central1"`
	ModelName    string `env:"ASSIST_MODEL_NAME" envDefault:"gemini-2.5-flash-lite"`

	// "memory" or "firestore".
	StorageBackend string `env:"ASSIST_STORAGE_BACKEND" envDefault:"memory"`

	// Speech synthesis command, e.g. "espeak" or "say". Empty disables
	// spoken replies.
	SpeechCommand string `env:"ASSIST_SPEECH_COMMAND" envDefault:"espeak"`

	// Participants of the session; the conversation key is derived from
	// the pair.
	UserID      string `env:"ASSIST_USER_ID" envDefault:"local-user"`
	AssistantID string `env:"ASSIST_PEER_ID" envDefault:"airsense-ai"`

	// Capture settings.
	SampleRate int `env:"ASSIST_SAMPLE_RATE" envDefault:"16000"`
	Channels   int `env:"ASSIST_CHANNELS" envDefault:"1"`
}

// Load reads all env vars and builds the config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("ASSIST_GCP_PROJECT must be set for the firestore backend")
	}
	if cfg.AnswerBackend == "vertex" && cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("ASSIST_GCP_PROJECT must be set for the vertex backend")
	}

	return cfg, nil
}
