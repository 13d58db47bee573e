package websearch

import "net/http"

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithLanguage(language string) Option {
	return func(c *Config) {
		c.language = language
	}
}

func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.maxResults = n
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
