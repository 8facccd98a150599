// Package fetch retrieves climb records from the OpenBeta GraphQL API.
// This is an impure I/O package: it performs network requests with
// bounded exponential-backoff retries per page.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/climbdata/climbex/pkg/climb"
	"github.com/climbdata/climbex/pkg/config"
	"github.com/climbdata/climbex/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Fetcher performs cursor-paginated retrieval of climbs.
type Fetcher struct {
	client *resty.Client
	cfg    *config.Config
	log    *slog.Logger

	// retryWait is the initial backoff interval; tests shorten it.
	retryWait time.Duration
}

// New creates a Fetcher from the run configuration. Retries are driven
// by an explicit backoff policy in fetchPage, so resty's own retry
// stays disabled to keep the attempt bound in exactly one place.
func New(cfg *config.Config, log *slog.Logger) *Fetcher {
	client := resty.New().
		SetBaseURL(cfg.API.URL).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "climbex").
		SetTimeout(time.Duration(cfg.API.TimeoutSec) * time.Second)

	return &Fetcher{
		client:    client,
		cfg:       cfg,
		log:       log,
		retryWait: 500 * time.Millisecond,
	}
}

// pageEnvelope is the transport shape of one page response.
type pageEnvelope struct {
	Data struct {
		AreasPage struct {
			NextCursor *string      `json:"nextCursor"`
			Areas      []areaRecord `json:"areas"`
		} `json:"areasPage"`
	} `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// areaRecord is a leaf area with its climbs. Area-level pathTokens and
// coordinates act as fallbacks for climbs that lack their own.
type areaRecord struct {
	UUID       string         `json:"uuid"`
	AreaName   string         `json:"areaName"`
	PathTokens []string       `json:"pathTokens"`
	Metadata   climb.Metadata `json:"metadata"`
	Climbs     []climb.Climb  `json:"climbs"`
}

// Fetch retrieves all pages in cursor order and returns the flattened
// climb sequence, page order and within-page order preserved. Any page
// that still fails after the retry bound aborts the whole fetch: a
// truncated export with no indication of truncation is worse than a
// failed run.
func (f *Fetcher) Fetch(ctx context.Context) ([]climb.Climb, error) {
	var out []climb.Climb
	var cursor string
	page := 0

	for {
		env, err := f.fetchPage(ctx, cursor)
		if err != nil {
			return nil, err
		}

		areas := env.Data.AreasPage.Areas
		before := len(out)
		for i := range areas {
			recs, err := flattenArea(&areas[i])
			if err != nil {
				return nil, err
			}
			for j := range recs {
				if f.inRegions(&recs[j]) {
					out = append(out, recs[j])
				}
			}
		}

		page++
		f.log.Debug("fetched page",
			"page", page, "areas", len(areas), "climbs", len(out)-before)

		next := env.Data.AreasPage.NextCursor
		if next == nil || *next == "" {
			break
		}
		cursor = *next
	}

	f.log.Info("fetch complete", "pages", page, "climbs", len(out))
	return out, nil
}

// fetchPage requests one page, retrying transient failures with
// exponential backoff up to the configured attempt bound. Rate-limit
// and server errors are transient; malformed payloads and GraphQL
// errors are not.
func (f *Fetcher) fetchPage(
	ctx context.Context, cursor string,
) (*pageEnvelope, error) {
	vars := map[string]any{"pageSize": f.cfg.API.PageSize}
	if len(f.cfg.Export.Regions) > 0 {
		vars["tokens"] = f.cfg.Export.Regions
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}
	body := map[string]any{"query": areasQuery, "variables": vars}

	attempts := 0
	op := func() (*pageEnvelope, error) {
		attempts++
		resp, err := f.client.R().
			SetContext(ctx).
			SetBody(body).
			Post("")
		if err != nil {
			return nil, RequestError(cursor, err)
		}
		if retryableStatus(resp.StatusCode()) {
			return nil, RequestError(cursor,
				fmt.Errorf("unexpected status %s", resp.Status()))
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, backoff.Permanent(RequestError(cursor,
				fmt.Errorf("unexpected status %s", resp.Status())))
		}

		var env pageEnvelope
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return nil, backoff.Permanent(
				PayloadError("page is not valid JSON", err))
		}
		if len(env.Errors) > 0 {
			return nil, backoff.Permanent(PayloadError(
				"endpoint returned errors",
				fmt.Errorf("%s", env.Errors[0].Message)))
		}
		return &env, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.retryWait
	policy := backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(f.cfg.API.MaxRetries)), ctx)

	env, err := backoff.RetryWithData(op, policy)
	if err != nil {
		var gerr *gn.Error
		exhausted := attempts > f.cfg.API.MaxRetries &&
			errors.As(err, &gerr) &&
			gerr.Code == errcode.FetchRequestError
		if exhausted {
			return nil, ExhaustedError(f.cfg.API.MaxRetries, err)
		}
		return nil, err
	}
	return env, nil
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// flattenArea extracts the climbs of one area, copying area-level
// pathTokens and coordinates onto climbs that do not carry their own.
// A climb without a parseable uuid makes the whole page malformed.
func flattenArea(a *areaRecord) ([]climb.Climb, error) {
	recs := make([]climb.Climb, 0, len(a.Climbs))
	for _, c := range a.Climbs {
		if _, err := uuid.Parse(c.UUID); err != nil {
			return nil, PayloadError(
				fmt.Sprintf("climb %q in area %q has malformed uuid %q",
					c.Name, a.AreaName, c.UUID),
				err)
		}
		if len(c.PathTokens) == 0 {
			c.PathTokens = a.PathTokens
		}
		if c.Metadata.Lat == nil && a.Metadata.Lat != nil {
			c.Metadata.Lat = a.Metadata.Lat
			c.Metadata.Lng = a.Metadata.Lng
		}
		recs = append(recs, c)
	}
	return recs, nil
}

// inRegions applies the configured country filter. The endpoint already
// filters by path tokens, this guards against drift in its answer.
func (f *Fetcher) inRegions(c *climb.Climb) bool {
	if len(f.cfg.Export.Regions) == 0 {
		return true
	}
	country, ok := c.PathToken(climb.LevelCountry)
	if !ok {
		return false
	}
	return slices.Contains(f.cfg.Export.Regions, country)
}
