package config

import "fmt"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Intake      IntakeConfig      `yaml:"intake"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Storage     StorageConfig     `yaml:"storage"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Auth        AuthConfig        `yaml:"auth"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port               string `yaml:"port"`
	ReadTimeoutSec     int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int    `yaml:"write_timeout_sec"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins"`
}

// GeminiConfig selects the model and how media is handed to it.
// Encoding is "inline" (bytes in the request) or "reference" (a URL).
type GeminiConfig struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Encoding string `yaml:"encoding"`
	Language string `yaml:"language"`
}

type IntakeConfig struct {
	MaxSizeMB       int `yaml:"max_size_mb"`
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
}

// ArchiveConfig picks the blob backend the archive is persisted to.
// DSN is interpreted per driver: a directory for "file", a path for
// "sqlite", a URL for "postgres", "redis" and "mongo".
type ArchiveConfig struct {
	Driver   string `yaml:"driver"`
	Key      string `yaml:"key"`
	DSN      string `yaml:"dsn"`
	Database string `yaml:"database"`
}

type StorageConfig struct {
	Region               string `yaml:"region"`
	Bucket               string `yaml:"bucket"`
	AccessKeyID          string `yaml:"access_key_id"`
	SecretAccessKey      string `yaml:"secret_access_key"`
	PresignExpireMinutes int    `yaml:"presign_expire_minutes"`
}

type FFmpegConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	ExtractAudio bool   `yaml:"extract_audio"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type AuthConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
}

var (
	validEncodings = map[string]bool{"inline": true, "reference": true}
	validDrivers   = map[string]bool{
		"memory": true, "file": true, "sqlite": true, "postgres": true,
		"redis": true, "mongo": true, "s3": true,
	}
)

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeoutSec == 0 {
		c.Server.ReadTimeoutSec = 30
	}
	// Analysis calls on long media can take minutes.
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 600
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Encoding == "" {
		c.Gemini.Encoding = "inline"
	}
	if !validEncodings[c.Gemini.Encoding] {
		return fmt.Errorf("gemini.encoding must be inline or reference, got %q", c.Gemini.Encoding)
	}
	if c.Gemini.Language == "" {
		c.Gemini.Language = "English"
	}
	if c.Intake.MaxSizeMB == 0 {
		c.Intake.MaxSizeMB = 20
	}
	if c.Intake.MaxSizeMB < 0 {
		return fmt.Errorf("intake.max_size_mb must be positive")
	}
	if c.Intake.FetchTimeoutSec == 0 {
		c.Intake.FetchTimeoutSec = 60
	}
	if c.Archive.Driver == "" {
		c.Archive.Driver = "file"
	}
	if !validDrivers[c.Archive.Driver] {
		return fmt.Errorf("archive.driver %q is not supported", c.Archive.Driver)
	}
	if c.Archive.Key == "" {
		c.Archive.Key = "transcriber_archive_v1"
	}
	if c.Archive.DSN == "" {
		switch c.Archive.Driver {
		case "file":
			c.Archive.DSN = "data/archive"
		case "sqlite":
			c.Archive.DSN = "data/archive.sqlite"
		case "postgres", "redis", "mongo":
			return fmt.Errorf("archive.dsn is required for driver %s", c.Archive.Driver)
		}
	}
	if c.Archive.Driver == "mongo" && c.Archive.Database == "" {
		c.Archive.Database = "mediascribe"
	}
	if c.Archive.Driver == "s3" || c.Gemini.Encoding == "reference" {
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for s3 archive or reference encoding")
		}
	}
	if c.Storage.Region == "" {
		c.Storage.Region = "us-east-1"
	}
	if c.Storage.PresignExpireMinutes == 0 {
		c.Storage.PresignExpireMinutes = 15
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "64k"
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Auth.ExpireHours == 0 {
		c.Auth.ExpireHours = 24
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}

	return nil
}

// MaxSizeBytes returns the intake size ceiling in bytes.
func (c IntakeConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}
