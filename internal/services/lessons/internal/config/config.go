package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gamma-omg/speaklexi/internal/pkg/env"
)

type Config struct {
	API      apiConfig
	Courses  courseConfig
	Session  sessionConfig
	Playback playbackConfig
	Dev      devConfig
}

type apiConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type courseConfig struct {
	CacheKeys int64
	CacheCost int64
	TTL       time.Duration
}

type sessionConfig struct {
	Store string
	File  string
	Redis redisConfig
}

type redisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
	Key      string
}

type playbackConfig struct {
	AdvanceDelay time.Duration
}

type httpConfig struct {
	ListenAddr      string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type devConfig struct {
	HTTP           httpConfig
	AuthSecret     string
	MediaRoot      string
	MediaServeRoot *url.URL
	MaxUploadSize  int64
}

const (
	SessionFile  = "file"
	SessionRedis = "redis"
)

func FromEnv() Config {
	return Config{
		API: apiConfig{
			BaseURL: env.String("LEXI_API_URL", "http://localhost:5000"),
			Token:   env.String("LEXI_TOKEN", ""),
			Timeout: env.Duration("LEXI_API_TIMEOUT", 15*time.Second),
		},
		Courses: courseConfig{
			CacheKeys: env.Int64("COURSE_CACHE_KEYS", 1000),
			CacheCost: env.Int64("COURSE_CACHE_COST", 1000),
			TTL:       env.Duration("COURSE_CACHE_TTL", 5*time.Minute),
		},
		Session: sessionConfig{
			Store: env.String("SESSION_STORE", SessionFile),
			File:  env.String("SESSION_FILE", defaultSessionFile()),
			Redis: redisConfig{
				Host:     env.String("REDIS_HOST", "localhost"),
				Port:     env.String("REDIS_PORT", "6379"),
				Password: env.String("REDIS_PASSWORD", ""),
				DB:       env.Int("REDIS_DB", 0),
				TTL:      env.Duration("REDIS_SESSION_TTL", 24*time.Hour),
				Key:      env.String("REDIS_SESSION_KEY", "speaklexi:session"),
			},
		},
		Playback: playbackConfig{
			AdvanceDelay: env.Duration("PLAYBACK_ADVANCE_DELAY", 1500*time.Millisecond),
		},
		Dev: devConfig{
			HTTP: httpConfig{
				ListenAddr:      env.String("DEV_LISTEN_ADDR", ":5000"),
				IdleTimeout:     env.Duration("DEV_IDLE_TIMEOUT", 60*time.Second),
				ReadTimeout:     env.Duration("DEV_READ_TIMEOUT", 30*time.Second),
				WriteTimeout:    env.Duration("DEV_WRITE_TIMEOUT", 30*time.Second),
				ShutdownTimeout: env.Duration("DEV_SHUTDOWN_TIMEOUT", 10*time.Second),
			},
			AuthSecret:     env.String("DEV_AUTH_SECRET", ""),
			MediaRoot:      env.String("DEV_MEDIA_ROOT", "./media"),
			MediaServeRoot: env.URL("DEV_MEDIA_SERVE_ROOT", &url.URL{Path: "/media/"}),
			MaxUploadSize:  env.Int64("DEV_MAX_UPLOAD_SIZE", 20<<20),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "speaklexi", "session.json")
}
