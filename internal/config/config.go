package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port        string `toml:"port"`
	Environment string `toml:"environment"`
}

type DataConfig struct {
	Dir     string `toml:"dir"`
	GeoJSON string `toml:"geojson"`
	Watch   bool   `toml:"watch"`
}

type SkillsConfig struct {
	// Source is "file" or "neo4j".
	Source string `toml:"source"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

type ChatConfig struct {
	// BackendURL is the base URL folioctl sends chat requests to.
	BackendURL string `toml:"backend_url"`
	// Prompt is a format string taking the portfolio context and then the
	// sources. The conversation is sent as separate messages.
	Prompt     string `toml:"prompt"`
	MaxSources int    `toml:"max_sources"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Skills SkillsConfig `toml:"skills"`
	Neo4j  Neo4jConfig  `toml:"neo4j"`
	LLM    LLMConfig    `toml:"llm"`
	Chat   ChatConfig   `toml:"chat"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides file settings with environment variables that are set.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"PORT", &c.Server.Port},
		{"ENVIRONMENT", &c.Server.Environment},
		{"DATA_DIR", &c.Data.Dir},
		{"GEOJSON_PATH", &c.Data.GeoJSON},
		{"SKILLS_SOURCE", &c.Skills.Source},
		{"NEO4J_URI", &c.Neo4j.URI},
		{"NEO4J_USER", &c.Neo4j.User},
		{"NEO4J_PASSWORD", &c.Neo4j.Password},
		{"LLM_PROVIDER", &c.LLM.Provider},
		{"LLM_MODEL", &c.LLM.Model},
		{"LLM_API_KEY", &c.LLM.APIKey},
		{"LLM_BASE_URL", &c.LLM.BaseURL},
		{"CHAT_BACKEND_URL", &c.Chat.BackendURL},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}

// Defaults fills in anything left empty.
func (c *Config) Defaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Skills.Source == "" {
		c.Skills.Source = "file"
	}
	if c.Neo4j.URI == "" {
		c.Neo4j.URI = "bolt://localhost:7687"
	}
	// Default to Ollama if provider is empty
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
		c.LLM.Model = "gpt-oss:latest"
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.Chat.BackendURL == "" {
		c.Chat.BackendURL = "http://localhost:" + c.Server.Port
	}
	if c.Chat.MaxSources == 0 {
		c.Chat.MaxSources = 3
	}
	if c.Chat.Prompt == "" {
		c.Chat.Prompt = DefaultChatPrompt
	}
}

// LoadOrDefault reads path when it exists and always applies env overrides
// and defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			loaded, err := Load(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	cfg.ApplyEnv()
	cfg.Defaults()
	return cfg, nil
}

const DefaultChatPrompt = `You are the assistant on a personal portfolio website. Answer questions about the
portfolio owner using only the information below. Be concise and professional.
If the answer is not in the information, say you don't know.

<PORTFOLIO>
%s
</PORTFOLIO>

<SOURCES>
%s
</SOURCES>

Respond with a JSON object: {"answer": "<your reply>"}`
