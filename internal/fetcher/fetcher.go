package fetcher

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"camperwatch/config"
	"camperwatch/helpers"
	"camperwatch/internal/offer"
	"camperwatch/logger"
	apperrors "camperwatch/pkg/errors"
	"camperwatch/services/cache"
)

// listingCacheKey is the cache key for the raw listing body
const listingCacheKey = "camperwatch:listing_body"

// Fetcher retrieves the remote relocation table and parses it into
// offer records. A single attempt per run, bounded by the fetch
// helper's fixed timeout.
type Fetcher struct {
	URL      string
	BaseURL  string
	CacheSvc cache.CacheService
	CacheTTL time.Duration

	fetchFunc func(url string) ([]byte, error)
	log       *logger.Logger
}

// New creates a fetcher for the configured listing URL. cacheSvc may be
// nil, in which case every run hits the upstream.
func New(cfg config.Config, cacheSvc cache.CacheService) *Fetcher {
	return &Fetcher{
		URL:       cfg.ListingURL,
		BaseURL:   cfg.BaseURL,
		CacheSvc:  cacheSvc,
		CacheTTL:  cfg.ListingCacheTTL,
		fetchFunc: helpers.FetchPage,
		log:       logger.ForFetcher(),
	}
}

// Fetch returns the offers currently listed upstream, in document
// order, with duplicate identifiers collapsed first-wins. An empty
// slice is a valid return; the caller decides whether that is fatal.
func (f *Fetcher) Fetch() ([]offer.Offer, error) {
	body, err := f.fetchBody()
	if err != nil {
		return nil, apperrors.NewFetch("fetcher", "could not fetch listing", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewFetch("fetcher", "could not parse listing HTML", err)
	}

	return f.parseRows(doc), nil
}

// fetchBody returns the raw listing body, consulting the listing cache
// when one is configured
func (f *Fetcher) fetchBody() ([]byte, error) {
	if f.CacheSvc != nil {
		if body, err := f.CacheSvc.Get(listingCacheKey); err == nil && len(body) > 0 {
			f.log.Debug().Int("bytes", len(body)).Msg("Listing served from cache")
			return body, nil
		}
	}

	body, err := f.fetchFunc(f.URL)
	if err != nil {
		return nil, err
	}

	if f.CacheSvc != nil {
		if setErr := f.CacheSvc.Set(listingCacheKey, body, f.CacheTTL); setErr != nil {
			f.log.Debug().Err(setErr).Msg("Could not cache listing body")
		}
	}

	return body, nil
}

// parseRows scans table rows in document order and extracts offers.
// A row yields an offer only if it has at least 3 columns, a non-empty
// identifier, non-empty origin and arrival, and its origin is not the
// header text "origin".
func (f *Fetcher) parseRows(doc *goquery.Document) []offer.Offer {
	var offers []offer.Offer
	seenIDs := make(map[string]struct{})

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		id := strings.TrimSpace(cells.Eq(0).Text())
		origin := strings.TrimSpace(cells.Eq(1).Text())
		arrival := strings.TrimSpace(cells.Eq(2).Text())

		if id == "" || origin == "" || arrival == "" {
			return
		}
		// Header rows carry the literal column label instead of a place
		if strings.EqualFold(origin, "origin") {
			return
		}
		if _, dup := seenIDs[id]; dup {
			return
		}
		seenIDs[id] = struct{}{}

		offers = append(offers, offer.Offer{
			ID:      id,
			URL:     f.offerURL(cells.Eq(0)),
			Origin:  origin,
			Arrival: arrival,
			Start:   cellText(cells, 3),
			End:     cellText(cells, 4),
			Model:   cellText(cells, 5),
			Days:    cellText(cells, 7),
		})
	})

	return offers
}

// offerURL extracts the offer link from the identifier cell and
// resolves it against the listing base URL
func (f *Fetcher) offerURL(idCell *goquery.Selection) string {
	href, exists := idCell.Find("a").First().Attr("href")
	if !exists {
		return ""
	}
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return f.BaseURL + href
}

// cellText returns the trimmed text of the cell at index, or "" when
// the row is short
func cellText(cells *goquery.Selection, index int) string {
	if index >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(index).Text())
}
