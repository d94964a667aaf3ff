package dramexchange

import (
	"context"
	"time"

	"dramex-logger/internal/components/assert"
	"dramex-logger/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/go-resty/resty/v2"
)

const DefaultUrl = "https://www.dramexchange.com/"

const (
	report_client_fetch = "client.fetch"
)

type ClientOptions struct {
	// UserAgent is sent with every request, a random browser user agent is
	// picked per client when empty.
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("dramexchange", tel)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = browser.Random()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetTimeout(timeout)

	telemetry.InstrumentResty(httpClient, tel)
	tel.ReportDebug("client initialized", userAgent, timeout.String())

	return &Client{
		http: httpClient,
		tel:  tel,
	}
}

// Fetch returns the body of the page at url. Transport failures and non-2xx
// responses are returned as *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if !res.IsSuccess() {
		c.tel.ReportWarning(report_client_fetch, url, res.Status())
		return nil, &FetchError{URL: url, Status: res.StatusCode()}
	}
	return res.Body(), nil
}
