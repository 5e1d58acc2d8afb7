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
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
}

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
	Env          string `envconfig:"PHARMAFLOW_APP_ENV" default:"dev"`
	Port         string `envconfig:"PHARMAFLOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PHARMAFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMAFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PHARMAFLOW_DB_DSN"`

	Host     string `envconfig:"PHARMAFLOW_DB_HOST"`
	Port     int    `envconfig:"PHARMAFLOW_DB_PORT" default:"5432"`
	User     string `envconfig:"PHARMAFLOW_DB_USER"`
	Password string `envconfig:"PHARMAFLOW_DB_PASSWORD"`
	Name     string `envconfig:"PHARMAFLOW_DB_NAME"`
	SSLMode  string `envconfig:"PHARMAFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHARMAFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHARMAFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHARMAFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHARMAFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHARMAFLOW_REDIS_URL"`
	Address      string        `envconfig:"PHARMAFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"PHARMAFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHARMAFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHARMAFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHARMAFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHARMAFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHARMAFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHARMAFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"PHARMAFLOW_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"PHARMAFLOW_JWT_ISSUER" default:"pharmaflow"`
	// The identity cookie and the token inside it share a 7-day lifetime.
	ExpirationMinutes int    `envconfig:"PHARMAFLOW_JWT_EXPIRATION_MINUTES" default:"10080"`
	CookieName        string `envconfig:"PHARMAFLOW_AUTH_COOKIE_NAME" default:"pharmaflow_token"`
	CookieSecure      bool   `envconfig:"PHARMAFLOW_AUTH_COOKIE_SECURE" default:"false"`
}

// TokenTTL returns how long minted identity tokens stay valid.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PHARMAFLOW_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PHARMAFLOW_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PHARMAFLOW_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PHARMAFLOW_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PHARMAFLOW_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PHARMAFLOW_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PHARMAFLOW_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PHARMAFLOW_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
