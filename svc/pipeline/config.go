package pipeline

// Config controls what a run fetches and how strict validation is.
type Config struct {
	Schedule         string  `env:"PIPELINE_SCHEDULE" envDefault:"@every 1h"`
	FetchWeather     bool    `env:"PIPELINE_FETCH_WEATHER" envDefault:"false"`
	WeatherCity      string  `env:"PIPELINE_WEATHER_CITY" envDefault:"London"`
	CryptoLimit      int     `env:"PIPELINE_CRYPTO_LIMIT" envDefault:"20"`
	PostsLimit       int     `env:"PIPELINE_POSTS_LIMIT" envDefault:"50"`
	MissingThreshold float64 `env:"PIPELINE_MISSING_THRESHOLD" envDefault:"0.5"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		Schedule:         "@every 1h",
		WeatherCity:      "London",
		CryptoLimit:      20,
		PostsLimit:       50,
		MissingThreshold: 0.5,
	}
}
