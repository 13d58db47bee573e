package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/samrat0033/financial-agent/tools"
)

type Section = string

const (
	PriceSection           Section = "price"
	FundamentalsSection    Section = "fundamentals"
	RecommendationsSection Section = "recommendations"
	NewsSection            Section = "news"
)

// Input is the schema for a market data request. The symbol must be an exact
// stock ticker (e.g. TSLA, NVDA, AAPL), not a company name.
type Input struct {
	// Symbol is the exact stock ticker symbol.
	Symbol string `json:"symbol" jsonschema:"title=symbol,description=The exact stock ticker symbol, e.g. TSLA." validate:"required"`
	// Sections to fetch. Defaults to all sections.
	Sections []Section `json:"sections,omitempty" jsonschema:"title=sections,description=Data sections to fetch." validate:"omitempty,dive,oneof=price fundamentals recommendations news"`
}

func NewInput(symbol string, sections ...Section) *Input {
	return &Input{
		Symbol:   symbol,
		Sections: sections,
	}
}

// Quote is the current trading snapshot of a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Currency      string  `json:"currency,omitempty"`
	Exchange      string  `json:"exchange,omitempty"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close,omitempty"`
}

// Fundamentals carries a company's headline valuation figures.
type Fundamentals struct {
	MarketCap       float64 `json:"market_cap,omitempty"`
	TrailingPE      float64 `json:"trailing_pe,omitempty"`
	ForwardPE       float64 `json:"forward_pe,omitempty"`
	DividendYield   float64 `json:"dividend_yield,omitempty"`
	TargetMeanPrice float64 `json:"target_mean_price,omitempty"`
	Recommendation  string  `json:"recommendation,omitempty"`
}

// Trend is one period of analyst recommendation counts.
type Trend struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strong_buy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strong_sell"`
}

// NewsItem is one company news headline.
type NewsItem struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher,omitempty"`
	Link        string `json:"link,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Output represents the aggregated market data for one symbol.
type Output struct {
	Quote           *Quote        `json:"quote,omitempty"`
	Fundamentals    *Fundamentals `json:"fundamentals,omitempty"`
	Recommendations []Trend       `json:"recommendations,omitempty"`
	News            []NewsItem    `json:"news,omitempty"`
}

func (o Output) String() string {
	bs, _ := json.Marshal(o)
	return string(bs)
}

type Config struct {
	tools.Config
	baseURL    string
	userAgent  string
	maxNews    int
	httpClient *http.Client
}

// Tool fetches stock quotes, fundamentals, analyst recommendations and
// company news from the Yahoo Finance JSON endpoints.
type Tool struct {
	Config
}

var _ tools.Caller = (*Tool)(nil)

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("YFinanceTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Provides current stock prices, analyst recommendations, company fundamentals and company news for a given stock ticker symbol.")
	}
	if ret.baseURL == "" {
		ret.baseURL = DefaultBaseURL
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.maxNews == 0 {
		ret.maxNews = DefaultMaxNews
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Spec implements tools.Caller.
func (t *Tool) Spec() tools.Spec {
	return tools.Spec{
		Name:        "stock_data",
		Description: t.Description(),
		Params: map[string]tools.Param{
			"symbol": {
				Type:        "string",
				Description: "The exact stock ticker symbol, e.g. TSLA for Tesla.",
			},
			"sections": {
				Type:        "array",
				Description: "Data sections to fetch. Defaults to all sections.",
				Items: &tools.Param{
					Type: "string",
					Enum: []string{PriceSection, FundamentalsSection, RecommendationsSection, NewsSection},
				},
			},
		},
		Required: []string{"symbol"},
	}
}

// Call implements tools.Caller.
func (t *Tool) Call(ctx context.Context, args map[string]any) (string, error) {
	input := new(Input)
	if err := tools.DecodeArgs(args, input); err != nil {
		return "", err
	}
	output, err := t.Run(ctx, input)
	if err != nil {
		return "", err
	}
	return output.String(), nil
}

// Run fetches the requested sections for one symbol.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	sections := input.Sections
	if len(sections) == 0 {
		sections = []Section{PriceSection, FundamentalsSection, RecommendationsSection, NewsSection}
	}
	wantSummary := false
	ret := new(Output)
	for _, section := range sections {
		switch section {
		case PriceSection:
			quote, err := t.fetchQuote(ctx, input.Symbol)
			if err != nil {
				return nil, err
			}
			ret.Quote = quote
		case NewsSection:
			news, err := t.fetchNews(ctx, input.Symbol)
			if err != nil {
				return nil, err
			}
			ret.News = news
		case FundamentalsSection, RecommendationsSection:
			wantSummary = true
		}
	}
	if wantSummary {
		if err := t.fetchSummary(ctx, input.Symbol, sections, ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// chartResponse is the wire shape of the v8 chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// summaryResponse is the wire shape of the v10 quoteSummary endpoint.
// Numeric fields arrive as {raw, fmt} pairs.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			FinancialData *struct {
				TargetMeanPrice   rawValue `json:"targetMeanPrice"`
				RecommendationKey string   `json:"recommendationKey"`
			} `json:"financialData"`
			SummaryDetail *struct {
				MarketCap     rawValue `json:"marketCap"`
				TrailingPE    rawValue `json:"trailingPE"`
				ForwardPE     rawValue `json:"forwardPE"`
				DividendYield rawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			RecommendationTrend *struct {
				Trend []struct {
					Period     string `json:"period"`
					StrongBuy  int    `json:"strongBuy"`
					Buy        int    `json:"buy"`
					Hold       int    `json:"hold"`
					Sell       int    `json:"sell"`
					StrongSell int    `json:"strongSell"`
				} `json:"trend"`
			} `json:"recommendationTrend"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

// searchResponse is the wire shape of the v1 search endpoint. Only the news
// array is consumed.
type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

type rawValue struct {
	Raw float64 `json:"raw"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (t *Tool) fetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	values := url.Values{}
	values.Set("range", "1d")
	values.Set("interval", "1d")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", t.baseURL, url.PathEscape(symbol), values.Encode())
	var resp chartResponse
	if err := t.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, resp.Chart.Error)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("quote %s: no result", symbol)
	}
	meta := resp.Chart.Result[0].Meta
	return &Quote{
		Symbol:        meta.Symbol,
		Currency:      meta.Currency,
		Exchange:      meta.ExchangeName,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
	}, nil
}

func (t *Tool) fetchNews(ctx context.Context, symbol string) ([]NewsItem, error) {
	values := url.Values{}
	values.Set("q", symbol)
	values.Set("newsCount", strconv.Itoa(t.maxNews))
	endpoint := fmt.Sprintf("%s/v1/finance/search?%s", t.baseURL, values.Encode())
	var resp searchResponse
	if err := t.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	items := resp.News
	if len(items) > t.maxNews {
		items = items[:t.maxNews]
	}
	ret := make([]NewsItem, 0, len(items))
	for _, item := range items {
		news := NewsItem{
			Title:     item.Title,
			Publisher: item.Publisher,
			Link:      item.Link,
		}
		if item.ProviderPublishTime > 0 {
			news.PublishedAt = time.Unix(item.ProviderPublishTime, 0).UTC().Format(time.RFC3339)
		}
		ret = append(ret, news)
	}
	return ret, nil
}

func (t *Tool) fetchSummary(ctx context.Context, symbol string, sections []Section, out *Output) error {
	values := url.Values{}
	values.Set("modules", "financialData,summaryDetail,recommendationTrend")
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", t.baseURL, url.PathEscape(symbol), values.Encode())
	var resp summaryResponse
	if err := t.getJSON(ctx, endpoint, &resp); err != nil {
		return err
	}
	if resp.QuoteSummary.Error != nil {
		return fmt.Errorf("summary %s: %w", symbol, resp.QuoteSummary.Error)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return fmt.Errorf("summary %s: no result", symbol)
	}
	result := resp.QuoteSummary.Result[0]
	for _, section := range sections {
		switch section {
		case FundamentalsSection:
			fundamentals := new(Fundamentals)
			if detail := result.SummaryDetail; detail != nil {
				fundamentals.MarketCap = detail.MarketCap.Raw
				fundamentals.TrailingPE = detail.TrailingPE.Raw
				fundamentals.ForwardPE = detail.ForwardPE.Raw
				fundamentals.DividendYield = detail.DividendYield.Raw
			}
			if financial := result.FinancialData; financial != nil {
				fundamentals.TargetMeanPrice = financial.TargetMeanPrice.Raw
				fundamentals.Recommendation = financial.RecommendationKey
			}
			out.Fundamentals = fundamentals
		case RecommendationsSection:
			if trend := result.RecommendationTrend; trend != nil {
				for _, period := range trend.Trend {
					out.Recommendations = append(out.Recommendations, Trend{
						Period:     period.Period,
						StrongBuy:  period.StrongBuy,
						Buy:        period.Buy,
						Hold:       period.Hold,
						Sell:       period.Sell,
						StrongSell: period.StrongSell,
					})
				}
			}
		}
	}
	return nil
}

func (t *Tool) getJSON(ctx context.Context, endpoint string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error querying market data: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("non-200 response from market data endpoint: %d", httpResp.StatusCode)
	}
	return json.NewDecoder(httpResp.Body).Decode(out)
}
