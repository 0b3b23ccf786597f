package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
type Config struct {
	FFmpegPath string

	// Encoding parameters shared by every segment and bumper so the final
	// concatenation can run in stream-copy mode.
	Resolution   string // e.g. "1280x720"
	FrameRate    int
	VideoCodec   string // e.g. "libx264"
	VideoBitrate string // e.g. "2500k"
	AudioCodec   string // e.g. "aac"
	AudioBitrate string // e.g. "128k"
	SampleRate   int

	BumperSeconds int // length of intro/outro/transition bumpers

	TempDir   string // shared scratch directory for intermediate segments
	OutputDir string // where finished reels and fallback artifacts land
	WatchDir  string // drop directory scanned by the watch command

	ServerPort string

	LogLevel      string
	LogPath       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),

		Resolution:   getEnv("REEL_RESOLUTION", "1280x720"),
		FrameRate:    getEnvInt("REEL_FRAME_RATE", 30),
		VideoCodec:   getEnv("REEL_VIDEO_CODEC", "libx264"),
		VideoBitrate: getEnv("REEL_VIDEO_BITRATE", "2500k"),
		AudioCodec:   getEnv("REEL_AUDIO_CODEC", "aac"),
		AudioBitrate: getEnv("REEL_AUDIO_BITRATE", "128k"),
		SampleRate:   getEnvInt("REEL_SAMPLE_RATE", 44100),

		BumperSeconds: getEnvInt("BUMPER_SECONDS", 3),

		TempDir:   getEnv("REEL_TEMP_DIR", filepath.Join(os.TempDir(), "meetingreel")),
		OutputDir: getEnv("REEL_OUTPUT_DIR", filepath.Join("output", "reels")),
		WatchDir:  getEnv("REEL_WATCH_DIR", "incoming"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPath:       getEnv("LOG_PATH", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
	}
}
