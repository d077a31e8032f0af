package fetch

import "time"

// Defaults used when a caller passes a zero limit or an empty city.
const (
	DefaultCryptoLimit = 20
	DefaultPostsLimit  = 50
	DefaultCity        = "London"
)

// Config holds upstream endpoints and credentials.
type Config struct {
	CoinGeckoURL  string        `env:"FETCH_COINGECKO_URL" envDefault:"https://api.coingecko.com/api/v3"`
	DummyJSONURL  string        `env:"FETCH_DUMMYJSON_URL" envDefault:"https://dummyjson.com"`
	WeatherURL    string        `env:"FETCH_WEATHER_URL" envDefault:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIKey string        `env:"WEATHER_API_KEY"`
	Timeout       time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		CoinGeckoURL: "https://api.coingecko.com/api/v3",
		DummyJSONURL: "https://dummyjson.com",
		WeatherURL:   "https://api.openweathermap.org/data/2.5",
		Timeout:      30 * time.Second,
	}
}
