package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

const defaultEnvFile = "./configs/.env"

type Config struct {
	API struct {
		Address         string        `env:"API_ADDRESS,default=:8080"`
		ShutdownTimeout time.Duration `env:"API_SHUTDOWN_TIMEOUT,default=10s"`
		CORSOrigins     string        `env:"CORS_ORIGINS,default=*"`
	}
	DB struct {
		Address  string `env:"DB_ADDRESS,default=localhost:5432"`
		Username string `env:"DB_USER,default=lumin"`
		Password string `env:"DB_PASSWORD"`
		Name     string `env:"DB_NAME,default=lumin"`
	}
	JWT struct {
		Secret     string        `env:"JWT_SECRET"`
		AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,default=1h"`
		RefreshTTL time.Duration `env:"JWT_REFRESH_TTL,default=168h"`
	}
	AI struct {
		APIKey    string        `env:"AI_API_KEY"`
		Model     string        `env:"AI_MODEL,default=gemini-1.5-flash"`
		BaseURL   string        `env:"AI_BASE_URL,default=https://generativelanguage.googleapis.com/v1beta"`
		Timeout   time.Duration `env:"AI_TIMEOUT,default=30s"`
		CacheSize int           `env:"AI_CACHE_SIZE,default=0"`
	}
	RateLimit struct {
		RPS     float64 `env:"RATE_LIMIT_RPS,default=10"`
		Burst   int     `env:"RATE_LIMIT_BURST,default=20"`
		AIRPS   float64 `env:"AI_RATE_LIMIT_RPS,default=0.5"`
		AIBurst int     `env:"AI_RATE_LIMIT_BURST,default=5"`
	}
	Log struct {
		Level  string `env:"LOG_LEVEL,default=info"`
		Format string `env:"LOG_FORMAT,default=json"`
		File   string `env:"LOG_FILE"`
	}
	Timezone      string        `env:"APP_TIMEZONE,default=UTC"`
	RedisAddress  string        `env:"REDIS_ADDR"`
	DashboardTTL  time.Duration `env:"DASHBOARD_CACHE_TTL,default=5m"`
	ChallengeCron string        `env:"CHALLENGE_CRON,default=5 * * * *"`
	DailyCount    int           `env:"DAILY_CHALLENGES,default=3"`
	MigrationsDir string        `env:"MIGRATIONS_DIR,default=./migrations"`
}

// New loads ./configs/.env once and decodes the environment into Config.
// A missing env file is not an error, variables may come from the process
// environment.
func New() *Config {
	once.Do(func() {
		cfg, err := Load(defaultEnvFile)
		if err != nil {
			log.Fatal("loading envs error: ", err)
		}
		instance = cfg
	})
	return instance
}

func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("reading env file error: " + err.Error())
		}
	}
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, errors.New("decoding envs error: " + err.Error())
	}
	return &cfg, nil
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(c.API.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
