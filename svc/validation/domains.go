package validation

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/dataguard/pkg/quality"
)

// Kind tells whether a domain arrives as a batch of rows or a single record.
type Kind string

const (
	KindTabular    Kind = "tabular"
	KindStructured Kind = "structured"
)

// Registered domain names.
const (
	DomainCryptocurrencies = "cryptocurrencies"
	DomainPosts            = "posts"
	DomainWeather          = "weather"
)

// Domain binds a data domain name to its shape and expected types.
type Domain struct {
	Name        string         `json:"name" yaml:"name"`
	Kind        Kind           `json:"kind" yaml:"kind"`
	Description string         `json:"description" yaml:"description"`
	Schema      quality.Schema `json:"schema" yaml:"schema"`
}

var registry = map[string]Domain{
	DomainCryptocurrencies: {
		Name:        DomainCryptocurrencies,
		Kind:        KindTabular,
		Description: "market data, one row per coin",
		Schema: quality.Schema{
			"symbol":             quality.Is(quality.TypeString),
			"name":               quality.Is(quality.TypeString),
			"current_price":      quality.OneOf(quality.TypeFloat, quality.TypeInteger),
			"market_cap":         quality.OneOf(quality.TypeInteger, quality.TypeFloat),
			"market_cap_rank":    quality.OneOf(quality.TypeInteger, quality.TypeFloat),
			"trading_volume_24h": quality.OneOf(quality.TypeInteger, quality.TypeFloat),
			"price_change_24h":   quality.OneOf(quality.TypeFloat, quality.TypeInteger),
		},
	},
	DomainPosts: {
		Name:        DomainPosts,
		Kind:        KindTabular,
		Description: "documents, one row per post",
		Schema: quality.Schema{
			"post_id":    quality.Is(quality.TypeInteger),
			"user_id":    quality.Is(quality.TypeInteger),
			"title":      quality.Is(quality.TypeString),
			"body":       quality.Is(quality.TypeString),
			"word_count": quality.Is(quality.TypeInteger),
		},
	},
	DomainWeather: {
		Name:        DomainWeather,
		Kind:        KindStructured,
		Description: "telemetry, one reading per city",
		Schema: quality.Schema{
			"city":        quality.Is(quality.TypeString),
			"temperature": quality.OneOf(quality.TypeInteger, quality.TypeFloat),
			"humidity":    quality.Is(quality.TypeInteger),
			"pressure":    quality.Is(quality.TypeInteger),
			"timestamp":   quality.OneOf(quality.TypeString, quality.TypeDateTime),
			"source":      quality.Is(quality.TypeString),
		},
	},
}

// Domains lists the registered domains sorted by name.
func Domains() []Domain {
	out := make([]Domain, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Domain) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Lookup returns the registered domain with the given name.
func Lookup(name string) (Domain, bool) {
	d, ok := registry[name]
	return d, ok
}
