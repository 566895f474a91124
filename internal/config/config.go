package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Platform   PlatformConfig   `yaml:"platform"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds settings for the operator-facing API tokens.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"agentopia"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
}

// PlatformConfig holds settings for the external agent platform that issues
// agent credentials and hosts per-agent memory.
type PlatformConfig struct {
	BaseURL      string        `yaml:"base_url"      env:"PLATFORM_BASE_URL"      env-required:"true"`
	ClientID     string        `yaml:"client_id"     env:"PLATFORM_CLIENT_ID"`
	ClientSecret string        `yaml:"client_secret" env:"PLATFORM_CLIENT_SECRET"`
	Timeout      time.Duration `yaml:"timeout"       env:"PLATFORM_TIMEOUT"       env-default:"10s"`
}

// GeminiConfig holds text-generation settings.
type GeminiConfig struct {
	APIKey            string `yaml:"api_key"             env:"GEMINI_API_KEY"        env-required:"true"`
	Model             string `yaml:"model"               env:"GEMINI_MODEL"          env-default:"gemini-2.5-flash"`
	FallbackModel     string `yaml:"fallback_model"      env:"GEMINI_FALLBACK_MODEL" env-default:"gemini-2.5-flash-lite"`
	RequestsPerMinute int    `yaml:"requests_per_minute" env:"GEMINI_RPM"            env-default:"10"`
	RequestsPerDay    int    `yaml:"requests_per_day"    env:"GEMINI_RPD"            env-default:"250"`
}

// SimulationConfig centralizes every probability and budget the simulation
// uses. Tests override individual fields to make branching deterministic.
type SimulationConfig struct {
	// Synchronous phase hard deadline (caller-facing budget).
	SyncBudget time.Duration `yaml:"sync_budget" env:"SIM_SYNC_BUDGET" env-default:"25s"`
	// Background phase soft budget.
	BackgroundBudget time.Duration `yaml:"background_budget" env:"SIM_BACKGROUND_BUDGET" env-default:"5m"`

	MaxCommenters int `yaml:"max_commenters" env:"SIM_MAX_COMMENTERS" env-default:"3"`
	MissionSize   int `yaml:"mission_size"   env:"SIM_MISSION_SIZE"   env-default:"3"`

	QualityThreshold int `yaml:"quality_threshold" env:"SIM_QUALITY_THRESHOLD" env-default:"5"`

	TopicDiscoveryProb float64 `yaml:"topic_discovery_prob" env:"SIM_TOPIC_DISCOVERY_PROB" env-default:"0.95"`
	DeepResearchProb   float64 `yaml:"deep_research_prob"   env:"SIM_DEEP_RESEARCH_PROB"   env-default:"0.10"`
	ParticipationProb  float64 `yaml:"participation_prob"   env:"SIM_PARTICIPATION_PROB"   env-default:"0.80"`
	MissionProb        float64 `yaml:"mission_prob"         env:"SIM_MISSION_PROB"         env-default:"0.20"`
	ChallengeProb      float64 `yaml:"challenge_prob"       env:"SIM_CHALLENGE_PROB"       env-default:"0.30"`
	CapsuleProb        float64 `yaml:"capsule_prob"         env:"SIM_CAPSULE_PROB"         env-default:"0.30"`
	WhisperProb        float64 `yaml:"whisper_prob"         env:"SIM_WHISPER_PROB"         env-default:"0.15"`

	// Detector windows.
	ResonanceWindow time.Duration `yaml:"resonance_window" env:"SIM_RESONANCE_WINDOW" env-default:"24h"`
	ShiftWindow     time.Duration `yaml:"shift_window"     env:"SIM_SHIFT_WINDOW"     env-default:"24h"`
	ChallengeWindow time.Duration `yaml:"challenge_window" env:"SIM_CHALLENGE_WINDOW" env-default:"48h"`

	ChallengeMinPosts int           `yaml:"challenge_min_posts" env:"SIM_CHALLENGE_MIN_POSTS" env-default:"3"`
	ChallengeDuration time.Duration `yaml:"challenge_duration"  env:"SIM_CHALLENGE_DURATION"  env-default:"168h"`
	CapsuleDelay      time.Duration `yaml:"capsule_delay"       env:"SIM_CAPSULE_DELAY"       env-default:"168h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
