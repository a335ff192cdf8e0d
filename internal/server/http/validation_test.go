package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQueryDefaultsStayUnset(t *testing.T) {
	filter, options, err := parseListQuery("", "", "", "", "")
	require.NoError(t, err)
	assert.Empty(t, filter.Status)
	assert.Zero(t, options.Limit, "defaulting is the service's job")
	assert.Zero(t, options.Page)
	assert.Empty(t, options.SortBy)
}

func TestParseListQueryClampsLimit(t *testing.T) {
	_, options, err := parseListQuery("", "5000", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, options.Limit)
}

func TestParseListQuerySortOptions(t *testing.T) {
	_, options, err := parseListQuery("", "", "", "dateTime", "ASC")
	require.NoError(t, err)
	assert.Equal(t, "dateTime", options.SortBy)
	assert.Equal(t, "asc", options.SortType)
}

func TestParseListQueryRejectsGarbage(t *testing.T) {
	_, _, err := parseListQuery("", "ten", "", "", "")
	assert.Error(t, err)

	_, _, err = parseListQuery("", "", "second", "", "")
	assert.Error(t, err)

	_, _, err = parseListQuery("", "-1", "", "", "")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	parsed, err := parseDateTime("2026-10-30T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, parsed.UTC().Hour())

	_, err = parseDateTime("next tuesday")
	assert.Error(t, err)
}
