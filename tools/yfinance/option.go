package yfinance

import "net/http"

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultMaxNews   = 5
)

type Option func(*Config)

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.userAgent = ua
	}
}

func WithMaxNews(n int) Option {
	return func(c *Config) {
		c.maxNews = n
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(c *Config) {
		c.httpClient = clt
	}
}
