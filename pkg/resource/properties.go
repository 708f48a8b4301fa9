package resource

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	properties *viper.Viper
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

var defaults = map[string]any{
	"app.name":                        "forecast-api",
	"app.log.level":                   "info",
	"app.server.port":                 "8080",
	"app.server.context-path":         "",
	"app.server.shutdown-timeout":     "10s",
	"app.nws.base-url":                "https://api.weather.gov",
	"app.nws.user-agent":              "(forecast-api, contact@example.com)",
	"app.nws.accept":                  "application/geo+json",
	"app.nws.timeout":                 "5s",
	"app.nws.status.enabled":          true,
	"app.nws.status.cron":             "@every 1m",
	"app.rate-limit.enabled":          false,
	"app.rate-limit.key":              "nws",
	"app.rate-limit.namespace":        "forecast-api",
	"app.rate-limit.max-per-second":   5,
	"app.rate-limit.max-per-minute":   120,
	"app.rate-limit.max-active":       0,
	"app.rate-limit.transaction-ttl":  "30s",
	"app.redis.host":                  "localhost",
	"app.redis.port":                  6379,
	"app.redis.password":              "",
	"app.redis.database":              0,
	"app.events.enabled":              false,
	"app.events.queue-name":           "forecast-served",
	"app.cloud.aws-region":            "us-east-1",
	"app.cloud.aws-endpoint":          "",
	"app.cloud.aws-access-key-id":     "",
	"app.cloud.aws-secret-access-key": "",
}

// init loads application properties from YAML
func init() {
	reset()

	var value, ok = os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if err := Init(value); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

func reset() {
	properties = viper.New()
	for key, value := range defaults {
		properties.SetDefault(key, value)
	}
	properties.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	properties.AutomaticEnv()
}

// Init reads a YAML properties file on top of the defaults. A missing file is not an error,
// every key has a default.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	resolved := make(map[string]any)
	parsePropertiesMap("", v.AllSettings(), resolved)

	// file values sit below environment variables
	for key, value := range resolved {
		properties.SetDefault(key, value)
	}
	return nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolvedValue, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolvedValue
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case []any:
			result[fullKey] = v
		case map[string]interface{}:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable expands a ${ENV:default} value. It reports false when the variable
// is unset and has no default so the built-in default stays in place.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value, true
	}

	envName := matches[1]
	if envValue, exists := os.LookupEnv(envName); exists {
		return envValue, true
	}
	if len(matches) > 2 && matches[2] != "" {
		return matches[2], true
	}
	return "", false
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}
