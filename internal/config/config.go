package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAccessSecret  = "your-secret-key"
	DefaultRefreshSecret = "your-refresh-secret-key"

	EnvProduction = "production"

	DBTypeMemory   = "memory"
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"
	DBTypeSupabase = "supabase"

	RegistryMemory = "memory"
	RegistryRedis  = "redis"
	RegistryMongo  = "mongo"
)

type Config struct {
	Port            string
	Environment     string
	AccessSecret    string
	RefreshSecret   string
	RefreshTokenTTL time.Duration
	DBType          string
	SQLitePath      string
	PostgresDSN     string
	RegistryType    string
	RedisAddr       string
	RedisKeyPrefix  string
	MongoDBURI      string
	MongoDBName     string
	TestUserPrefix  string
	ShutdownTimeout time.Duration
}

func LoadConfig() *Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file loaded, using process environment")
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() *Config {
	return parse(os.Getenv)
}

// FromMap builds the config from a parsed env file, e.g. godotenv.Read.
func FromMap(env map[string]string) *Config {
	return parse(func(key string) string { return env[key] })
}

type lookup func(string) string

func (l lookup) str(key, defaultValue string) string {
	if value := l(key); value != "" {
		return value
	}
	return defaultValue
}

func (l lookup) duration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(l(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func parse(get lookup) *Config {
	dbType := strings.ToLower(get.str("DB_TYPE", DBTypeMemory))
	if dbType == DBTypeSupabase {
		dbType = DBTypePostgres
	}

	return &Config{
		Port:            get.str("PORT", ":8080"),
		Environment:     strings.ToLower(get.str("APP_ENV", "development")),
		AccessSecret:    get.str("JWT_SECRET", DefaultAccessSecret),
		RefreshSecret:   get.str("REFRESH_SECRET", DefaultRefreshSecret),
		RefreshTokenTTL: get.duration("REFRESH_TOKEN_TTL", time.Hour*24*7), // 7 days
		DBType:          dbType,
		SQLitePath:      get.str("SQLITE_PATH", "users.db"),
		PostgresDSN:     get("DATABASE_URL"),
		RegistryType:    strings.ToLower(get.str("REGISTRY_TYPE", RegistryMemory)),
		RedisAddr:       get.str("REDIS_ADDR", "localhost:6379"),
		RedisKeyPrefix:  get.str("REDIS_KEY_PREFIX", "refresh-token:"),
		MongoDBURI:      get("MONGODB_URI"),
		MongoDBName:     get.str("MONGODB_NAME", "session"),
		TestUserPrefix:  get.str("TEST_USER_PREFIX", "test-user-"),
		ShutdownTimeout: get.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Checklist lists the settings that are unsafe for a production deployment.
func (c *Config) Checklist() []string {
	var warnings []string
	if c.AccessSecret == DefaultAccessSecret {
		warnings = append(warnings, "JWT_SECRET is not set, the insecure development default is in use")
	}
	if c.RefreshSecret == DefaultRefreshSecret {
		warnings = append(warnings, "REFRESH_SECRET is not set, the insecure development default is in use")
	}
	if c.AccessSecret == c.RefreshSecret {
		warnings = append(warnings, "JWT_SECRET and REFRESH_SECRET must differ")
	}
	if c.RegistryType == RegistryMemory {
		warnings = append(warnings, "REGISTRY_TYPE=memory does not survive restarts or span processes")
	}
	if c.DBType == DBTypeMemory {
		warnings = append(warnings, "DB_TYPE=memory keeps users in process memory")
	}
	return warnings
}

func GetString(key string, defaultValue string) string {
	return lookup(os.Getenv).str(key, defaultValue)
}

func GetInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(os.Getenv).duration(key, defaultValue)
}
