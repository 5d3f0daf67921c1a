package internal

// Option customises Run and RunMCP before the service is built.
type Option func(*application)

type application struct {
	config *Config
}

// WithConfig supplies a pre-built configuration in place of the defaults.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
