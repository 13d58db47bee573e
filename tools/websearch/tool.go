package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/samrat0033/financial-agent/tools"
)

type Category = string

const (
	GeneralCategory Category = "general"
	NewsCategory    Category = "news"
)

// Input is the schema for a metasearch request. Returns a list of search
// results with a short content snippet and URLs for further exploration.
type Input struct {
	// Queries list of search queries.
	Queries []string `json:"queries" jsonschema:"title=queries,description=List of search queries." validate:"required,min=1"`
	// Category of the search queries.
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,default=general,description=Category of the search queries."`
}

func NewInput(category Category, queries []string) *Input {
	if category == "" {
		category = GeneralCategory
	}
	return &Input{
		Queries:  queries,
		Category: category,
	}
}

// Result represents a single search result item.
type Result struct {
	// URL The URL of the search result
	URL string `json:"url" validate:"required,url"`
	// Title The title of the search result
	Title string `json:"title" validate:"required"`
	// Content The content snippet of the search result
	Content string `json:"content,omitempty"`
	// Query The query used to obtain this search result
	Query string `json:"query,omitempty"`
}

// searchResponse is the wire response from the search engine.
type searchResponse struct {
	Query           string   `json:"query"`
	NumberOfResults int      `json:"number_of_results"`
	Results         []Result `json:"results"`
}

// Output represents the aggregated output of the search tool.
type Output struct {
	// Results List of search result items
	Results []Result `json:"results,omitempty"`
	// Category The category of the search results
	Category Category `json:"category,omitempty"`
}

func (o Output) String() string {
	bs, _ := json.Marshal(o)
	return string(bs)
}

type Config struct {
	tools.Config
	language   string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Tool performs searches on a SearxNG instance with the provided queries
// and category.
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
		ret.SetTitle("WebSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Search the web for information, news and references. Returns result snippets with source URLs.")
	}
	if ret.maxResults == 0 {
		ret.maxResults = 10
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Spec implements tools.Caller.
func (t *Tool) Spec() tools.Spec {
	return tools.Spec{
		Name:        "web_search",
		Description: t.Description(),
		Params: map[string]tools.Param{
			"queries": {
				Type:        "array",
				Description: "List of search queries.",
				Items:       &tools.Param{Type: "string"},
			},
			"category": {
				Type:        "string",
				Description: "Category of the search queries.",
				Enum:        []string{GeneralCategory, NewsCategory},
			},
		},
		Required: []string{"queries"},
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

// Run runs the search synchronously with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	ret := &Output{Category: input.Category}
	for _, query := range input.Queries {
		items, err := t.fetchSearchResults(ctx, query, input.Category)
		if err != nil {
			return nil, err
		}
		ret.Results = append(ret.Results, items...)
		if len(ret.Results) >= t.maxResults {
			ret.Results = ret.Results[:t.maxResults]
			break
		}
	}
	return ret, nil
}

// fetchSearchResults queries the search engine and returns the parsed search response
func (t *Tool) fetchSearchResults(ctx context.Context, query string, category Category) ([]Result, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	values.Set("engines", "bing,duckduckgo,google,startpage,yandex")
	if t.language != "" {
		values.Set("language", t.language)
	}
	if category != "" {
		values.Set("categories", category)
	}
	searchURL := fmt.Sprintf("%s/search?%s", t.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %v", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}

	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	for idx := range resp.Results {
		resp.Results[idx].Query = query
	}

	return resp.Results, nil
}
