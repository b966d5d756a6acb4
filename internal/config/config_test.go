package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/kanjibot"
  max_conns: 5
  min_conns: 1

reddit:
  client_id: "cid"
  client_secret: "csecret"
  username: "kanjibot"
  password: "hunter2"
  user_agent: "kanjibot test"
  poll_interval: "10s"

imgur:
  client_id: "imgur-cid"

data:
  dir: "/var/lib/kanjibot"
  fonts: "/fonts/mincho.ttf, /fonts/gothic.ttf"

bot:
  footer: "custom footer"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.DSN != "postgres://u:p@localhost:5432/kanjibot" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 5 {
		t.Errorf("database.max_conns = %d, want 5", cfg.Database.MaxConns)
	}

	if cfg.Reddit.ClientID != "cid" {
		t.Errorf("reddit.client_id = %q", cfg.Reddit.ClientID)
	}
	if cfg.Reddit.PollInterval != 10*time.Second {
		t.Errorf("reddit.poll_interval = %v, want 10s", cfg.Reddit.PollInterval)
	}
	if cfg.Reddit.Account != "kanjibot" {
		t.Errorf("reddit.account = %q, want username fallback", cfg.Reddit.Account)
	}

	if cfg.Imgur.ClientID != "imgur-cid" {
		t.Errorf("imgur.client_id = %q", cfg.Imgur.ClientID)
	}

	if cfg.Data.Dir != "/var/lib/kanjibot" {
		t.Errorf("data.dir = %q", cfg.Data.Dir)
	}
	if len(cfg.Data.FontPaths) != 2 {
		t.Fatalf("data font paths len = %d, want 2", len(cfg.Data.FontPaths))
	}
	if cfg.Data.FontPaths[1] != "/fonts/gothic.ttf" {
		t.Errorf("data.fonts[1] = %q", cfg.Data.FontPaths[1])
	}

	if cfg.Bot.Footer != "custom footer" {
		t.Errorf("bot.footer = %q", cfg.Bot.Footer)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("REDDIT_POLL_INTERVAL", "2m")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Reddit.PollInterval != 2*time.Minute {
		t.Errorf("reddit.poll_interval = %v, want 2m (ENV override)", cfg.Reddit.PollInterval)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn (ENV override)", cfg.Log.Level)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/kanjibot")
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Reddit.PollInterval != 30*time.Second {
		t.Errorf("reddit.poll_interval = %v, want 30s (default)", cfg.Reddit.PollInterval)
	}
	if cfg.Data.Dir != "./data" {
		t.Errorf("data.dir = %q, want ./data (default)", cfg.Data.Dir)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate_RejectsTooManyFonts(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Reddit: RedditConfig{PollInterval: time.Second},
		Data:   DataConfig{FontsRaw: "a.ttf,b.ttf,c.ttf,d.ttf,e.ttf"},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for five fonts")
	}
}

func TestValidate_RejectsZeroPollInterval(t *testing.T) {
	t.Parallel()

	cfg := Config{}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero poll interval")
	}
}

func TestValidateBot_RequiresCredentials(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Reddit: RedditConfig{
			ClientID:     "cid",
			ClientSecret: "csecret",
			PollInterval: time.Second,
		},
	}

	if err := cfg.ValidateBot(); err == nil {
		t.Fatal("expected error for missing username/password")
	}

	cfg.Reddit.Username = "kanjibot"
	cfg.Reddit.Password = "hunter2"

	if err := cfg.ValidateBot(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDataConfig_Paths(t *testing.T) {
	t.Parallel()

	d := DataConfig{Dir: "/data"}

	if got := d.KanjidicPath(); got != "/data/kanjidic2.xml" {
		t.Errorf("KanjidicPath = %q", got)
	}
	if got := d.JMdictPath(); got != "/data/JMdict_e" {
		t.Errorf("JMdictPath = %q", got)
	}
	if got := d.StrokeDir(); got != "/data/strokes" {
		t.Errorf("StrokeDir = %q", got)
	}
}
