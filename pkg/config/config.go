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
	OTP           OTPConfig
	Mail          MailConfig
	Admin         AdminConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"SWINETECH_APP_ENV" required:"true"`
	Port         string `envconfig:"SWINETECH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SWINETECH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SWINETECH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SWINETECH_DB_DSN"`
	Driver string `envconfig:"SWINETECH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SWINETECH_DB_HOST"`
	LegacyPort     int    `envconfig:"SWINETECH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SWINETECH_DB_USER"`
	LegacyPassword string `envconfig:"SWINETECH_DB_PASSWORD"`
	LegacyName     string `envconfig:"SWINETECH_DB_NAME"`
	LegacySSLMode  string `envconfig:"SWINETECH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SWINETECH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SWINETECH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SWINETECH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SWINETECH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SWINETECH_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SWINETECH_REDIS_ADDR"`
	Password     string        `envconfig:"SWINETECH_REDIS_PASSWORD"`
	DB           int           `envconfig:"SWINETECH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SWINETECH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SWINETECH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SWINETECH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SWINETECH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SWINETECH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SWINETECH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SWINETECH_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SWINETECH_JWT_EXPIRATION_MINUTES" default:"120"`
	VerificationTTLMinutes int    `envconfig:"SWINETECH_JWT_VERIFICATION_TTL_MINUTES" default:"15"`
}

// AccessTTL returns the access token lifetime.
func (j JWTConfig) AccessTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// VerificationTTL returns the lifetime of a minted verification token.
func (j JWTConfig) VerificationTTL() time.Duration {
	if j.VerificationTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.VerificationTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SWINETECH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SWINETECH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SWINETECH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SWINETECH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SWINETECH_ARGON_KEY_LEN" default:"32"`
}

// OTPConfig tunes the email verification flow. AppSecret keys the HMAC that
// digests issued codes before storage.
type OTPConfig struct {
	AppSecret             string `envconfig:"SWINETECH_OTP_APP_SECRET" required:"true"`
	CodeLength            int    `envconfig:"SWINETECH_OTP_CODE_LENGTH" default:"6"`
	ExpiryMinutes         int    `envconfig:"SWINETECH_OTP_EXPIRY_MINUTES" default:"5"`
	ResendCooldownSeconds int    `envconfig:"SWINETECH_OTP_RESEND_COOLDOWN_SECONDS" default:"60"`
	MaxAttempts           int    `envconfig:"SWINETECH_OTP_MAX_ATTEMPTS" default:"3"`
}

// Expiry returns how long an issued code stays valid.
func (o OTPConfig) Expiry() time.Duration {
	return time.Duration(o.ExpiryMinutes) * time.Minute
}

// ResendCooldown returns the minimum gap between code sends.
func (o OTPConfig) ResendCooldown() time.Duration {
	return time.Duration(o.ResendCooldownSeconds) * time.Second
}

type MailConfig struct {
	ResendAPIKey string `envconfig:"SWINETECH_RESEND_API_KEY"`
	BaseURL      string `envconfig:"SWINETECH_RESEND_BASE_URL" default:"https://api.resend.com"`
	From         string `envconfig:"SWINETECH_MAIL_FROM" default:"SwineTech <onboarding@resend.dev>"`
}

// AdminConfig gates privileged self-registration. An empty SignupCode
// disables the endpoint.
type AdminConfig struct {
	SignupCode string `envconfig:"SWINETECH_ADMIN_SIGNUP_CODE"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SWINETECH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SWINETECH_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	OTPWindow          time.Duration `envconfig:"SWINETECH_AUTH_RATE_LIMIT_OTP_WINDOW" default:"1m"`
	OTPEmailLimit      int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"3"`
	OTPIPLimit         int           `envconfig:"SWINETECH_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SWINETECH_AUTO_MIGRATE" default:"false"`
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
