package config

// EnvPrefix is applied by envconfig to every variable lookup.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical environment variable names, kept in one place so tests and
// deployment manifests reference the same strings.
const (
	EnvAppEnv   = "JERSEYFORGE_APP_ENV"
	EnvPort     = "JERSEYFORGE_APP_PORT"
	EnvDBDSN    = "JERSEYFORGE_DB_DSN"
	EnvDBHost   = "JERSEYFORGE_DB_HOST"
	EnvDBUser   = "JERSEYFORGE_DB_USER"
	EnvDBName   = "JERSEYFORGE_DB_NAME"
	EnvRedisURL = "JERSEYFORGE_REDIS_URL"

	EnvJWTSecret      = "JERSEYFORGE_JWT_SECRET"
	EnvJWTIssuer      = "JERSEYFORGE_JWT_ISSUER"
	EnvJWTExpHours    = "JERSEYFORGE_JWT_EXPIRATION_HOURS"
	EnvAdminSetupCode = "JERSEYFORGE_ADMIN_SETUP_CODE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
