package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load parses the full configuration from the environment. Secrets have no
// fallback values: a missing JWT secret or admin setup code fails startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"JERSEYFORGE_APP_ENV" required:"true"`
	Port         string `envconfig:"JERSEYFORGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JERSEYFORGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JERSEYFORGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"JERSEYFORGE_DB_DSN"`

	LegacyHost     string `envconfig:"JERSEYFORGE_DB_HOST"`
	LegacyPort     int    `envconfig:"JERSEYFORGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JERSEYFORGE_DB_USER"`
	LegacyPassword string `envconfig:"JERSEYFORGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"JERSEYFORGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"JERSEYFORGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JERSEYFORGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JERSEYFORGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JERSEYFORGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JERSEYFORGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	AcquireTimeout  time.Duration `envconfig:"JERSEYFORGE_DB_ACQUIRE_TIMEOUT" default:"5s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JERSEYFORGE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JERSEYFORGE_REDIS_ADDR"`
	Password     string        `envconfig:"JERSEYFORGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"JERSEYFORGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JERSEYFORGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JERSEYFORGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JERSEYFORGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JERSEYFORGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JERSEYFORGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret          string `envconfig:"JERSEYFORGE_JWT_SECRET" required:"true"`
	Issuer          string `envconfig:"JERSEYFORGE_JWT_ISSUER" required:"true"`
	ExpirationHours int    `envconfig:"JERSEYFORGE_JWT_EXPIRATION_HOURS" default:"168"`
}

// TokenTTL returns the access token lifetime (defaults to 7 days).
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"JERSEYFORGE_BCRYPT_COST" default:"12"`
}

// AdminConfig carries the break-glass setup code used to create the first
// admin account. Required so no build ships with a known default.
type AdminConfig struct {
	SetupCode string `envconfig:"JERSEYFORGE_ADMIN_SETUP_CODE" required:"true"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"JERSEYFORGE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JERSEYFORGE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
