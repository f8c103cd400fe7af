package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "swinetech"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, shared with tests and operational tooling.
const (
	EnvAppEnv       = "SWINETECH_APP_ENV"
	EnvPort         = "SWINETECH_APP_PORT"
	EnvLogLevel     = "SWINETECH_LOG_LEVEL"
	EnvLogWarnStack = "SWINETECH_LOG_WARN_STACK"

	EnvDBDSN      = "SWINETECH_DB_DSN"
	EnvDBHost     = "SWINETECH_DB_HOST"
	EnvDBPort     = "SWINETECH_DB_PORT"
	EnvDBUser     = "SWINETECH_DB_USER"
	EnvDBPassword = "SWINETECH_DB_PASSWORD"
	EnvDBName     = "SWINETECH_DB_NAME"
	EnvDBSSLMode  = "SWINETECH_DB_SSLMODE"

	EnvRedisURL = "SWINETECH_REDIS_URL"

	EnvJWTSecret              = "SWINETECH_JWT_SECRET"
	EnvJWTIssuer              = "SWINETECH_JWT_ISSUER"
	EnvJWTExpMins             = "SWINETECH_JWT_EXPIRATION_MINUTES"
	EnvJWTVerificationTTLMins = "SWINETECH_JWT_VERIFICATION_TTL_MINUTES"

	EnvOTPAppSecret = "SWINETECH_OTP_APP_SECRET"

	EnvResendAPIKey = "SWINETECH_RESEND_API_KEY"
	EnvMailFrom     = "SWINETECH_MAIL_FROM"

	EnvAdminSignupCode = "SWINETECH_ADMIN_SIGNUP_CODE"

	EnvAutoMigrate = "SWINETECH_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
