package config_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := config.FromEnv()

	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, int64(1000), cfg.Courses.CacheKeys)
	assert.Equal(t, 5*time.Minute, cfg.Courses.TTL)
	assert.Equal(t, config.SessionFile, cfg.Session.Store)
	assert.True(t, strings.HasSuffix(cfg.Session.File, "session.json"))
	assert.Equal(t, "6379", cfg.Session.Redis.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Playback.AdvanceDelay)
	assert.Equal(t, ":5000", cfg.Dev.HTTP.ListenAddr)
	assert.Equal(t, "/media/", cfg.Dev.MediaServeRoot.Path)
	assert.Equal(t, int64(20<<20), cfg.Dev.MaxUploadSize)
	assert.Empty(t, cfg.Dev.AuthSecret)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LEXI_API_URL", "https://api.speaklexi.test")
	t.Setenv("LEXI_TOKEN", "tok")
	t.Setenv("LEXI_API_TIMEOUT", "3s")
	t.Setenv("COURSE_CACHE_TTL", "1m")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_FILE", "/tmp/s.json")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PLAYBACK_ADVANCE_DELAY", "10ms")
	t.Setenv("DEV_LISTEN_ADDR", ":9000")
	t.Setenv("DEV_AUTH_SECRET", "secret")
	t.Setenv("DEV_MEDIA_ROOT", "/srv/media")
	t.Setenv("DEV_MEDIA_SERVE_ROOT", "http://cdn.test/m/")
	t.Setenv("DEV_MAX_UPLOAD_SIZE", "1024")

	cfg := config.FromEnv()

	assert.Equal(t, "https://api.speaklexi.test", cfg.API.BaseURL)
	assert.Equal(t, "tok", cfg.API.Token)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Minute, cfg.Courses.TTL)
	assert.Equal(t, config.SessionRedis, cfg.Session.Store)
	assert.Equal(t, "/tmp/s.json", cfg.Session.File)
	assert.Equal(t, "cache", cfg.Session.Redis.Host)
	assert.Equal(t, "6380", cfg.Session.Redis.Port)
	assert.Equal(t, 2, cfg.Session.Redis.DB)
	assert.Equal(t, 10*time.Millisecond, cfg.Playback.AdvanceDelay)
	assert.Equal(t, ":9000", cfg.Dev.HTTP.ListenAddr)
	assert.Equal(t, "secret", cfg.Dev.AuthSecret)
	assert.Equal(t, "/srv/media", cfg.Dev.MediaRoot)
	assert.Equal(t, &url.URL{Scheme: "http", Host: "cdn.test", Path: "/m/"}, cfg.Dev.MediaServeRoot)
	assert.Equal(t, int64(1024), cfg.Dev.MaxUploadSize)
}
