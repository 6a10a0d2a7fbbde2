package extractor

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// CollyExtractor implements Extractor with Colly
type CollyExtractor struct {
	collector *colly.Collector
	config    ExtractorConfig
}

// NewCollyExtractor creates a new Colly-based link extractor and downloader
func NewCollyExtractor(config ExtractorConfig) *CollyExtractor {
	options := []colly.CollectorOption{colly.AllowURLRevisit()}
	if config.UserAgent != "" {
		options = append(options, colly.UserAgent(config.UserAgent))
	}
	c := colly.NewCollector(options...)

	// Configure rate limiting
	if config.RequestDelay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Delay:       config.RequestDelay,
			RandomDelay: config.RequestDelay / 2,
		})
	}

	return &CollyExtractor{
		collector: c,
		config:    config,
	}
}

func (e *CollyExtractor) Name() string {
	return "colly_csv"
}

// ExtractLinks returns the distinct CSV links of indexURL in page order,
// resolved against the page URL
func (e *CollyExtractor) ExtractLinks(ctx context.Context, indexURL string) ([]Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var links []Link
	var extractErr error

	collector := e.collector.Clone()

	collector.OnHTML("html", func(el *colly.HTMLElement) {
		links = CSVLinks(el.DOM, el.Request.AbsoluteURL)
	})

	collector.OnError(func(r *colly.Response, err error) {
		extractErr = fmt.Errorf("colly error: %w (status: %d)", err, r.StatusCode)
	})

	if err := collector.Visit(indexURL); err != nil {
		return nil, fmt.Errorf("visit index url: %w", err)
	}

	if extractErr != nil {
		return nil, extractErr
	}

	return links, nil
}

// Download fetches rawURL, refusing bodies over MaxBodyBytes
func (e *CollyExtractor) Download(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body []byte
	var downloadErr error

	collector := e.collector.Clone()
	if e.config.MaxBodyBytes > 0 {
		// one extra byte tells a truncated body from an exact fit
		collector.MaxBodySize = e.config.MaxBodyBytes + 1
	} else {
		collector.MaxBodySize = 0
	}

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		downloadErr = fmt.Errorf("colly error: %w (status: %d)", err, r.StatusCode)
	})

	if err := collector.Visit(rawURL); err != nil {
		return nil, fmt.Errorf("visit dataset url: %w", err)
	}

	if downloadErr != nil {
		return nil, downloadErr
	}

	if e.config.MaxBodyBytes > 0 && len(body) > e.config.MaxBodyBytes {
		return nil, fmt.Errorf("dataset %s exceeds %d bytes", rawURL, e.config.MaxBodyBytes)
	}

	return body, nil
}

// CSVLinks collects a[href] targets whose path ends in .csv. resolve turns
// relative hrefs into absolute URLs.
func CSVLinks(doc *goquery.Selection, resolve func(string) string) []Link {
	seen := make(map[string]bool)
	var links []Link

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}

		abs := resolve(href)
		u, err := url.Parse(abs)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		if !strings.EqualFold(path.Ext(u.Path), ".csv") {
			return
		}

		if seen[abs] {
			return
		}
		seen[abs] = true

		links = append(links, Link{URL: abs, Name: path.Base(u.Path)})
	})

	return links
}
