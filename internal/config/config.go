package config

import (
	"path/filepath"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Reddit   RedditConfig   `yaml:"reddit"`
	Imgur    ImgurConfig    `yaml:"imgur"`
	Data     DataConfig     `yaml:"data"`
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedditConfig holds script-app credentials and polling settings.
type RedditConfig struct {
	ClientID     string        `yaml:"client_id"     env:"REDDIT_CLIENT_ID"`
	ClientSecret string        `yaml:"client_secret" env:"REDDIT_CLIENT_SECRET"`
	Username     string        `yaml:"username"      env:"REDDIT_USERNAME"`
	Password     string        `yaml:"password"      env:"REDDIT_PASSWORD"`
	// Account is the name the bot answers to in summon lines ("u/<account>").
	// Defaults to Username when empty.
	Account      string        `yaml:"account"       env:"REDDIT_ACCOUNT"`
	UserAgent    string        `yaml:"user_agent"    env:"REDDIT_USER_AGENT"    env-default:"kanjibot/1.0 (by github.com/vbalak/kanjibot)"`
	PollInterval time.Duration `yaml:"poll_interval" env:"REDDIT_POLL_INTERVAL" env-default:"30s"`
}

// ImgurConfig holds the anonymous-upload client ID. An empty ClientID
// disables image links in replies.
type ImgurConfig struct {
	ClientID string `yaml:"client_id" env:"IMGUR_CLIENT_ID"`
}

// DataConfig points at the dictionary source files and image assets.
type DataConfig struct {
	Dir string `yaml:"dir" env:"DATA_DIR" env-default:"./data"`

	// FontsRaw is a comma-separated list of font file paths used for
	// preview images. Parsed into FontPaths during validation.
	FontsRaw  string   `yaml:"fonts" env:"DATA_FONTS"`
	FontPaths []string `yaml:"-"     env:"-"`
}

// KanjidicPath returns the location of the kanjidic2 XML dump.
func (d DataConfig) KanjidicPath() string { return filepath.Join(d.Dir, "kanjidic2.xml") }

// KradfilePath returns the location of the main krad decomposition file.
func (d DataConfig) KradfilePath() string { return filepath.Join(d.Dir, "kradfile") }

// Kradfile2Path returns the location of the extension krad file.
func (d DataConfig) Kradfile2Path() string { return filepath.Join(d.Dir, "kradfile2") }

// JMdictPath returns the location of the English JMdict XML dump.
func (d DataConfig) JMdictPath() string { return filepath.Join(d.Dir, "JMdict_e") }

// RadicalsPath returns the location of the classical radicals list.
func (d DataConfig) RadicalsPath() string { return filepath.Join(d.Dir, "radicals.txt") }

// StrokeDir returns the directory holding stroke-order diagrams.
func (d DataConfig) StrokeDir() string { return filepath.Join(d.Dir, "strokes") }

// BotConfig holds reply composition settings.
type BotConfig struct {
	Footer string `yaml:"footer" env:"BOT_FOOTER" env-default:"^^[\\[About\\]](https://github.com/vbalak/kanjibot)"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
