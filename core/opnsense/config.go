package opnsense

// Config holds configuration for the appliance API session.
type Config struct {
	// URL is the base URL of the appliance (scheme and host, optionally a port).
	URL string `mapstructure:"url" default:"https://192.168.1.1"`
	// Key is the API key used as the basic auth user.
	Key string `mapstructure:"key" default:""`
	// Secret is the API secret used as the basic auth password.
	Secret string `mapstructure:"secret" default:""`
	// SSLVerify toggles verification of the appliance certificate.
	SSLVerify bool `mapstructure:"ssl_verify" default:"true"`
	// SSLCAFile is an optional PEM bundle used to verify the appliance certificate.
	SSLCAFile string `mapstructure:"ssl_ca_file" default:""`
	// TimeoutSeconds bounds every API request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
	// RateLimit is the maximum number of requests per second sent to the appliance.
	// Zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" default:"10"`
}
