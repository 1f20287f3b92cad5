package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	DiscordToken       string        `env:"DISCORD_TOKEN,required=true"`
	PersonasFile       string        `env:"PERSONAS_FILE,required=true"`
	EnabledChannels    string        `env:"ENABLED_CHANNELS"`
	StoreDriver        string        `env:"STORE_DRIVER,default=badger"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,default=data/badger"`
	SQLiteFilepath     string        `env:"SQLITE_FILEPATH,default=data/relay.db"`
	ProvenanceTTL      time.Duration `env:"PROVENANCE_TTL,default=0s"`
	HandleLimit        int           `env:"HANDLE_LIMIT,default=15"`
	HandlePrefix       string        `env:"HANDLE_PREFIX,default=RP:"`
	ChunkLimit         int           `env:"CHUNK_LIMIT,default=1999"`
	SceneSelector      string        `env:"SCENE_SELECTOR,default=scene"`
	EmojiMapFile       string        `env:"EMOJI_MAP_FILE"`
	LottieCodecPath    string        `env:"LOTTIE_CODEC_PATH"`
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT,default=10s"`
	FetchMaxBytes      int64         `env:"FETCH_MAX_BYTES,default=8388608"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE,default=0"`
	BannedWordsFile    string        `env:"BANNED_WORDS_FILE"`
	CensorChar         string        `env:"CENSOR_CHARACTER,default=*"`
	MetricsPort        int           `env:"METRICS_PORT,default=0"`
	DebugPort          int           `env:"DEBUG_PORT,default=8081"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=15s"`
	GCInterval         time.Duration `env:"GC_INTERVAL,default=10m"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT,default=30s"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO"`
}

// LoadConfig reads the optional .env files then the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	// A missing .env file is not an error, the environment may be set already.
	_ = godotenv.Load(envFiles...)
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.HandleLimit < 1 {
		return Config{}, fmt.Errorf("HANDLE_LIMIT must be at least 1, got %d", config.HandleLimit)
	}
	if config.ChunkLimit < 1 {
		return Config{}, fmt.Errorf("CHUNK_LIMIT must be at least 1, got %d", config.ChunkLimit)
	}
	if _, err := CharacterRune(config.CensorChar); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Channels splits the comma separated allow-list, an empty list enables every channel.
func (c Config) Channels() []string {
	parts := lo.Map(strings.Split(c.EnabledChannels, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Uniq(lo.Compact(parts))
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
