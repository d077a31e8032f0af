// Package fetch pulls raw data from the public APIs the pipeline watches:
// CoinGecko market data, DummyJSON posts and OpenWeatherMap conditions.
//
// Tabular sources come back as *quality.Batch, the weather source as a
// single quality.Record. Numbers are decoded with json.Number so integer
// and float columns keep their tags. Upstream failures are reported as
// *HTTPError; a 401 also matches ErrUnauthorized.
package fetch
