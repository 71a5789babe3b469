package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.key", "") // registered so AutomaticEnv reaches it during Unmarshal
	v.SetDefault("api.timeout_seconds", DefaultTimeoutSeconds)

	v.SetDefault("display.table_width", DefaultTableWidth)
	v.SetDefault("display.timezone", DefaultTimezone)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("api.key", APIKeyEnvVar)
}

// Defaults returns the configuration produced by SetDefaults alone
func Defaults() Config {
	return Config{
		API: APIConfig{
			URL:            DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Display: DisplayConfig{
			TableWidth: DefaultTableWidth,
			Timezone:   DefaultTimezone,
		},
	}
}
