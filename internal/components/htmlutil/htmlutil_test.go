package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  3.10 ", expected: "3.10"},
		{in: "DDR4 16Gb\n\t (1Gx16) 3200", expected: "DDR4 16Gb (1Gx16) 3200"},
		{in: "", expected: ""},
		{in: "\u200b+0.02", expected: "+0.02"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.in))
	}
}

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tr><td> DDR3<br>4Gb 512Mx8 <span>1600/1866</span></td></tr></table>`,
	))
	require.NoError(t, err)

	require.Equal(t, "DDR3 4Gb 512Mx8 1600/1866", CleanText(doc.Find("td")))
	require.Equal(t, "", CleanText(doc.Find("th")))
}
