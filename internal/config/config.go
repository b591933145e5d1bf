package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pickempool/pickem-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Lockout math depends on schedule staleness staying bounded, so cached
// schedule reads may not outlive a minute.
const maxCacheTTL = time.Minute

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                   string
	ServiceName              string
	ServiceVersion           string
	HTTPAddr                 string
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
	StoreProfile             string
	DBURL                    string
	DBDisablePreparedBinary  bool
	CacheEnabled             bool
	CacheTTL                 time.Duration
	CORSAllowedOrigins       []string
	InternalJobToken         string
	PprofEnabled             bool
	PprofAddr                string
	UptraceEnabled           bool
	UptraceDSN               string
	UptraceLogsEnabled       bool
	BetterStackEnabled       bool
	BetterStackEndpoint      string
	BetterStackToken         string
	BetterStackTimeout       time.Duration
	BetterStackMinLevel      logging.Level
	PyroscopeEnabled         bool
	PyroscopeServerAddress   string
	PyroscopeAppName         string
	PyroscopeAuthToken       string
	PyroscopeBasicAuthUser   string
	PyroscopeBasicAuthPass   string
	PyroscopeUploadRate      time.Duration
	OddsFeedEnabled          bool
	OddsAPIBaseURL           string
	OddsAPIKey               string
	OddsAPITimeout           time.Duration
	OddsAPIMaxRetries        int
	OddsCircuitEnabled       bool
	OddsCircuitFailureCount  int
	OddsCircuitOpenTimeout   time.Duration
	OddsCircuitHalfOpenMax   int
	OddsSyncMaxWorkers       int
	LogLevel                 logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storeProfile, err := parseStoreProfile(getEnv("APP_STORE_PROFILE", StoreMemory))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storeProfile == StorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when APP_STORE_PROFILE=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	if cacheTTL > maxCacheTTL {
		return Config{}, fmt.Errorf("CACHE_TTL must be <= %s", maxCacheTTL)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "65s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	oddsFeedEnabled, err := strconv.ParseBool(getEnv("ODDS_FEED_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_FEED_ENABLED: %w", err)
	}
	oddsAPIKey := strings.TrimSpace(getEnv("ODDS_API_KEY", ""))
	if oddsFeedEnabled && oddsAPIKey == "" {
		return Config{}, fmt.Errorf("ODDS_API_KEY is required when ODDS_FEED_ENABLED=true")
	}
	oddsAPITimeout, err := time.ParseDuration(getEnv("ODDS_API_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_TIMEOUT: %w", err)
	}
	if oddsAPITimeout <= 0 {
		return Config{}, fmt.Errorf("ODDS_API_TIMEOUT must be > 0")
	}
	oddsAPIMaxRetries, err := getEnvAsInt("ODDS_API_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_API_MAX_RETRIES: %w", err)
	}
	if oddsAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("ODDS_API_MAX_RETRIES must be >= 0")
	}
	oddsCircuitEnabled, err := strconv.ParseBool(getEnv("ODDS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CIRCUIT_ENABLED: %w", err)
	}
	oddsCircuitFailureCount, err := getEnvAsInt("ODDS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if oddsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ODDS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	oddsCircuitOpenTimeout, err := time.ParseDuration(getEnv("ODDS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if oddsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ODDS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	oddsCircuitHalfOpenMax, err := getEnvAsInt("ODDS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if oddsCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("ODDS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	oddsSyncMaxWorkers, err := getEnvAsInt("ODDS_SYNC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_SYNC_MAX_WORKERS: %w", err)
	}
	if oddsSyncMaxWorkers < 1 {
		return Config{}, fmt.Errorf("ODDS_SYNC_MAX_WORKERS must be >= 1")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "pickem-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		StoreProfile:            storeProfile,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InternalJobToken:        strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		UptraceLogsEnabled:      uptraceLogsEnabled,
		BetterStackEnabled:      betterStackEnabled,
		BetterStackEndpoint:     betterStackEndpoint,
		BetterStackToken:        strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:      betterStackTimeout,
		BetterStackMinLevel:     logging.ParseLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPass:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:     pyroscopeUploadRate,
		OddsFeedEnabled:         oddsFeedEnabled,
		OddsAPIBaseURL:          strings.TrimSpace(getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4")),
		OddsAPIKey:              oddsAPIKey,
		OddsAPITimeout:          oddsAPITimeout,
		OddsAPIMaxRetries:       oddsAPIMaxRetries,
		OddsCircuitEnabled:      oddsCircuitEnabled,
		OddsCircuitFailureCount: oddsCircuitFailureCount,
		OddsCircuitOpenTimeout:  oddsCircuitOpenTimeout,
		OddsCircuitHalfOpenMax:  oddsCircuitHalfOpenMax,
		OddsSyncMaxWorkers:      oddsSyncMaxWorkers,
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStoreProfile(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StoreMemory, StorePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_STORE_PROFILE %q: valid values are %s, %s", v, StoreMemory, StorePostgres)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}
