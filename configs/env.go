package configs

import (
	"github.com/spf13/viper"
)

// EnvConfig holds settings that only come from the process environment.
type EnvConfig struct {
	ApplicationName    string
	PropertiesFilePath string
}

var Env *EnvConfig

func init() {
	env := viper.New()
	env.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName:    getStringOrDefault(env, "APPLICATION_NAME", "forecast-api"),
		PropertiesFilePath: getStringOrDefault(env, "PROPERTIES_FILE_PATH", "configs/application.yml"),
	}
}

func getStringOrDefault(env *viper.Viper, key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
