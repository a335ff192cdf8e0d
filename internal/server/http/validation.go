package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"remind/internal/reminder/ports"
)

// maxListLimit is the hard ceiling on a single page. The stored contract has
// no upper bound; the clamp protects the server without changing behaviour
// for any caller using sane page sizes.
const maxListLimit = 100

func parseDateTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("dateTime must be an ISO-8601 timestamp: %w", err)
	}
	return parsed, nil
}

func parseListQuery(status, limitRaw, pageRaw, sortBy, sortType string) (ports.Filter, ports.QueryOptions, error) {
	filter := ports.Filter{Status: strings.TrimSpace(status)}
	options := ports.QueryOptions{
		SortBy:   strings.TrimSpace(sortBy),
		SortType: strings.ToLower(strings.TrimSpace(sortType)),
	}

	if limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			return filter, options, errors.New("limit must be an integer")
		}
		if limit < 0 {
			return filter, options, errors.New("limit must not be negative")
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		options.Limit = limit
	}
	if pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil {
			return filter, options, errors.New("page must be an integer")
		}
		if page < 0 {
			return filter, options, errors.New("page must not be negative")
		}
		options.Page = page
	}
	return filter, options, nil
}
