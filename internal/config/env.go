package config

const (
	envAIKey       = "MINDEASE_AI_API_KEY"
	envJWTSecret   = "MINDEASE_JWT_SECRET"
	envDatabaseDSN = "MINDEASE_DATABASE_DSN"
	envAccessToken = "MINDEASE_ACCESS_TOKEN"
)

func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	setString(&cfg.AIAPIKey, getenv(envAIKey))
	setString(&cfg.JWTSecret, getenv(envJWTSecret))
	setString(&cfg.DatabaseDSN, getenv(envDatabaseDSN))
	setString(&cfg.AccessToken, getenv(envAccessToken))
}
