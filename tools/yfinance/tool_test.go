package yfinance

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"TSLA","currency":"USD","exchangeName":"NMS","regularMarketPrice":242.84,"chartPreviousClose":238.59}}],"error":null}}`

const summaryBody = `{"quoteSummary":{"result":[{"financialData":{"targetMeanPrice":{"raw":270.5},"recommendationKey":"hold"},"summaryDetail":{"marketCap":{"raw":772000000000},"trailingPE":{"raw":68.2},"forwardPE":{"raw":58.1},"dividendYield":{"raw":0}},"recommendationTrend":{"trend":[{"period":"0m","strongBuy":7,"buy":12,"hold":18,"sell":6,"strongSell":3}]}}],"error":null}}`

const searchBody = `{"news":[{"title":"Tesla shares jump after delivery beat","publisher":"Reuters","link":"https://example.com/tsla-deliveries","providerPublishTime":1714060800},{"title":"Tesla announces new factory","publisher":"Bloomberg","link":"https://example.com/tsla-factory","providerPublishTime":1714057200}]}`

func startQuoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody)
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, summaryBody)
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestQuote(t *testing.T) {
	srv := startQuoteServer(t)
	tool := New(WithBaseURL(srv.URL))
	result, err := tool.Run(context.Background(), NewInput("TSLA", PriceSection))
	if err != nil {
		t.Fatalf("Error running yfinance tool: %v", err)
	}
	if result.Quote == nil {
		t.Fatal("Expect quote, but got none")
	}
	if result.Quote.Symbol != "TSLA" {
		t.Errorf("Expect symbol TSLA, but got %s", result.Quote.Symbol)
	}
	if result.Quote.Price != 242.84 {
		t.Errorf("Expect price 242.84, but got %f", result.Quote.Price)
	}
	if result.Fundamentals != nil || result.Recommendations != nil {
		t.Error("Expect only the price section to be populated")
	}
}

func TestFundamentalsAndRecommendations(t *testing.T) {
	srv := startQuoteServer(t)
	tool := New(WithBaseURL(srv.URL))
	result, err := tool.Run(context.Background(), NewInput("TSLA", FundamentalsSection, RecommendationsSection))
	if err != nil {
		t.Fatalf("Error running yfinance tool: %v", err)
	}
	if result.Fundamentals == nil {
		t.Fatal("Expect fundamentals, but got none")
	}
	if result.Fundamentals.Recommendation != "hold" {
		t.Errorf("Expect recommendation hold, but got %s", result.Fundamentals.Recommendation)
	}
	if result.Fundamentals.TargetMeanPrice != 270.5 {
		t.Errorf("Expect target mean price 270.5, but got %f", result.Fundamentals.TargetMeanPrice)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("Expect 1 recommendation period, but got %d", len(result.Recommendations))
	}
	if result.Recommendations[0].StrongBuy != 7 {
		t.Errorf("Expect 7 strong buys, but got %d", result.Recommendations[0].StrongBuy)
	}
}

func TestNews(t *testing.T) {
	srv := startQuoteServer(t)
	tool := New(WithBaseURL(srv.URL))
	result, err := tool.Run(context.Background(), NewInput("TSLA", NewsSection))
	if err != nil {
		t.Fatalf("Error running yfinance tool: %v", err)
	}
	if len(result.News) != 2 {
		t.Fatalf("Expect 2 news items, but got %d", len(result.News))
	}
	if result.News[0].Title != "Tesla shares jump after delivery beat" {
		t.Errorf("Unexpected headline: %s", result.News[0].Title)
	}
	if result.News[0].Publisher != "Reuters" {
		t.Errorf("Expect publisher Reuters, but got %s", result.News[0].Publisher)
	}
	if result.News[0].PublishedAt != "2024-04-25T16:00:00Z" {
		t.Errorf("Unexpected publish time: %s", result.News[0].PublishedAt)
	}
	if result.Quote != nil || result.Fundamentals != nil {
		t.Error("Expect only the news section to be populated")
	}
}

func TestNewsCapped(t *testing.T) {
	srv := startQuoteServer(t)
	tool := New(WithBaseURL(srv.URL), WithMaxNews(1))
	result, err := tool.Run(context.Background(), NewInput("TSLA", NewsSection))
	if err != nil {
		t.Fatalf("Error running yfinance tool: %v", err)
	}
	if len(result.News) != 1 {
		t.Errorf("Expect news capped at 1 item, but got %d", len(result.News))
	}
}

func TestDefaultSections(t *testing.T) {
	srv := startQuoteServer(t)
	tool := New(WithBaseURL(srv.URL))
	result, err := tool.Run(context.Background(), NewInput("TSLA"))
	if err != nil {
		t.Fatalf("Error running yfinance tool: %v", err)
	}
	if result.Quote == nil || result.Fundamentals == nil || len(result.Recommendations) == 0 || len(result.News) == 0 {
		t.Error("Expect all sections populated by default")
	}
}

func TestSymbolRequired(t *testing.T) {
	tool := New(WithBaseURL("http://localhost:1"))
	if _, err := tool.Call(context.Background(), map[string]any{"sections": []string{"price"}}); err == nil {
		t.Error("expected validation error for missing symbol")
	}
}

func TestAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v8/finance/chart/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	tool := New(WithBaseURL(srv.URL))
	if _, err := tool.Run(context.Background(), NewInput("NOPE", PriceSection)); err == nil {
		t.Error("expected error from upstream error payload")
	}
}
