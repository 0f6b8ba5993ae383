package config

import "os"

type Config struct {
	MongoURI           string
	MongoDatabase      string
	RedisAddr          string
	HTTPPort           string
	JWTSecret          string
	TriviaBaseURL      string
	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string
}

func Load() *Config {
	return &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DB", "quizarena"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		TriviaBaseURL:      getEnv("TRIVIA_BASE_URL", "https://opentdb.com"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
