package webscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/samrat0033/financial-agent/tools"
)

// Input schema for the webpage scraper tool.
type Input struct {
	// URL of the webpage to scrape.
	URL string `json:"url" jsonschema:"title=url,description=URL of the webpage to scrape." validate:"required,url"`
}

func NewInput(link string) *Input {
	return &Input{URL: link}
}

// Metadata about the scraped webpage.
type Metadata struct {
	// Title is the title of the webpage.
	Title string `json:"title,omitempty"`
	// Author is the author of the webpage content.
	Author string `json:"author,omitempty"`
	// Description is the meta description of the webpage.
	Description string `json:"description,omitempty"`
	// SiteName is the name of the website.
	SiteName string `json:"sitename,omitempty"`
	// Domain is the domain name of the website.
	Domain string `json:"domain,omitempty"`
}

// Output schema of the webpage scraper tool.
type Output struct {
	// Content The scraped content in markdown format.
	Content string `json:"content,omitempty"`
	// Metadata is metadata about the scraped webpage.
	Metadata *Metadata `json:"metadata,omitempty"`
}

func (o Output) String() string {
	bs, _ := json.Marshal(o)
	return string(bs)
}

type Config struct {
	tools.Config
	// userAgent User agent string to use for requests.
	userAgent string
	// timeout Timeout in seconds for HTTP requests
	timeout int
	// maxContentLength Maximum content length in bytes to process.
	maxContentLength int64
	httpClient       *http.Client
}

// Tool fetches a webpage, extracts its main content and converts it to
// markdown for the model to read.
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
		ret.SetTitle("WebscraperTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetch a webpage and return its main content as markdown, with page metadata. Use it to read a source found by web_search.")
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout == 0 {
		ret.timeout = 30
	}
	if ret.maxContentLength == 0 {
		ret.maxContentLength = 1_000_000
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: time.Second * time.Duration(ret.timeout)}
	}
	return ret
}

// Spec implements tools.Caller.
func (t *Tool) Spec() tools.Spec {
	return tools.Spec{
		Name:        "read_webpage",
		Description: t.Description(),
		Params: map[string]tools.Param{
			"url": {
				Type:        "string",
				Description: "URL of the webpage to scrape.",
			},
		},
		Required: []string{"url"},
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

// Run fetches and converts a single page.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	parsedURL, err := url.ParseRequestURI(input.URL)
	if err != nil {
		return nil, err
	}
	doc, err := t.fetch(ctx, input)
	if err != nil {
		return nil, err
	}
	mainContent := t.extractMainContent(doc)
	markdown, err := htmltomarkdown.ConvertString(
		mainContent,
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return nil, err
	}
	markdown = t.cleanMarkdownContent(markdown)
	if int64(len(markdown)) > t.maxContentLength {
		cut := t.maxContentLength
		for cut > 0 && !utf8.RuneStart(markdown[cut]) {
			cut--
		}
		markdown = markdown[:cut]
	}
	meta := new(Metadata)
	meta.Domain = parsedURL.Host
	t.extractMetadata(doc, meta)
	return &Output{Content: markdown, Metadata: meta}, nil
}

func (t *Tool) fetch(ctx context.Context, input *Input) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response fetching page: %d", httpResp.StatusCode)
	}
	return goquery.NewDocumentFromReader(httpResp.Body)
}

// extractMetadata extracts metadata from the webpage
func (t *Tool) extractMetadata(doc *goquery.Document, meta *Metadata) {
	meta.Title = doc.Find("head title").Text()
	meta.Author, _ = doc.Find("meta[name='author']").Attr("content")
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
}

// extractMainContent extracts the main content from the webpage using custom heuristics
func (t *Tool) extractMainContent(doc *goquery.Document) string {
	for _, tag := range []string{"script", "style", "nav", "header", "footer"} {
		doc.Find(tag).Remove()
	}
	contentCandidates := []string{
		"main",
		"#content, #main",
		".content, .main",
		"article",
		"body",
	}
	var mainContent string
	for _, selector := range contentCandidates {
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			if txt, err := sel.Html(); err == nil {
				mainContent = txt
				break
			}
		}
	}
	if mainContent == "" {
		mainContent, _ = doc.Html()
	}
	return mainContent
}

var blankLines = regexp.MustCompile(`\r?\n{2,}`)

// cleanMarkdownContent removes excessive whitespace and normalizes formatting
func (t *Tool) cleanMarkdownContent(content string) string {
	content = blankLines.ReplaceAllString(content, "\n\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	content = strings.Join(lines, "\n")
	return strings.TrimSpace(content) + "\n"
}
