package dramexchange

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveTimestamp(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{text: "Last Update: Mar 5 2024 14:30 (GMT+8)", expected: "20240305_1430"},
		{text: "Last Update: Mar.5 2024    14:30 (GMT+8)", expected: "20240305_1430"},
		{text: "Last Update:Jan 2 2024 9:05 (GMT+8)", expected: "20240102_0905"},
		{text: "Last Update: dec 31 1999 23:59 (GMT+8)", expected: "19991231_2359"},
		{text: "Last Update: FEB 29 2024 0:0 (GMT+8)", expected: "20240229_0000"},
		{text: "DRAM Spot Price Last Update: Oct.17 2026 18:10 (GMT+8) refresh", expected: "20261017_1810"},
	}

	for _, test := range testCases {
		token, err := ResolveTimestamp(test.text, DefaultMarkers)
		require.NoError(t, err, test.text)
		require.Equal(t, test.expected, token.String(), test.text)
	}
}

func TestResolveTimestampErrors(t *testing.T) {
	testCases := []string{
		"Last Update: Mar 5 2024 14:30",
		"Mar 5 2024 14:30 (GMT+8)",
		"Last Update: Mrz 5 2024 14:30 (GMT+8)",
		"Last Update: March 5 2024 14:30 (GMT+8)",
		"Last Update: Feb 30 2024 14:30 (GMT+8)",
		"Last Update: Feb 29 2023 14:30 (GMT+8)",
		"Last Update: Mar 5 2024 24:00 (GMT+8)",
		"Last Update: Mar 5 2024 14:60 (GMT+8)",
		"Last Update: Mar 5 2024 (GMT+8)",
		"Last Update: 2024-03-05 14:30 (GMT+8)",
		"",
	}

	for _, text := range testCases {
		_, err := ResolveTimestamp(text, DefaultMarkers)
		var tsErr *TimestampFormatError
		require.True(t, errors.As(err, &tsErr), "expected TimestampFormatError for %q, got %v", text, err)
	}
}

func TestResolveTimestampCustomMarkers(t *testing.T) {
	token, err := ResolveTimestamp("Updated at Apr 1 2025 8:00 (UTC)", Markers{
		Label: "Updated at",
		Zone:  "(UTC)",
	})
	require.NoError(t, err)
	require.Equal(t, Token{Year: 2025, Month: time.April, Day: 1, Hour: 8, Minute: 0}, token)
	require.Equal(t, time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC), token.Time())
}

func TestTokenOrdering(t *testing.T) {
	// chronological order
	texts := []string{
		"Last Update: Dec 31 2023 23:59 (GMT+8)",
		"Last Update: Jan 2 2024 9:05 (GMT+8)",
		"Last Update: Jan 2 2024 9:30 (GMT+8)",
		"Last Update: Jan 2 2024 10:00 (GMT+8)",
		"Last Update: Jan 10 2024 0:00 (GMT+8)",
		"Last Update: Nov 1 2024 7:15 (GMT+8)",
	}

	tokens := make([]string, len(texts))
	for i, text := range texts {
		token, err := ResolveTimestamp(text, DefaultMarkers)
		require.NoError(t, err)
		tokens[i] = token.String()

		if i > 0 {
			prev, err := ParseToken(tokens[i-1])
			require.NoError(t, err)
			require.Equal(t, -1, prev.Compare(token))
			require.True(t, prev.Time().Before(token.Time()))
		}
	}
	require.True(t, sort.StringsAreSorted(tokens))
}

func TestParseToken(t *testing.T) {
	token, err := ParseToken("20240305_1430")
	require.NoError(t, err)
	require.Equal(t, Token{Year: 2024, Month: time.March, Day: 5, Hour: 14, Minute: 30}, token)
	require.Equal(t, "20240305_1430", token.String())

	for _, text := range []string{"20241305_1430", "20240305_2430", "2024035_1430", "20240305-1430", "x"} {
		_, err := ParseToken(text)
		var tsErr *TimestampFormatError
		require.ErrorAs(t, err, &tsErr, text)
	}
}
