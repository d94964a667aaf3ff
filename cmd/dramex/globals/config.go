package globals

import (
	"time"

	"dramex-logger/internal/components/telemetry"
	"dramex-logger/internal/pipeline"
	"dramex-logger/internal/scrapers/dramexchange"
	"dramex-logger/internal/snapshotlog"
)

type Config struct {
	Url    string `json:"url"`
	LogDir string `json:"log_dir"`
	Prefix string `json:"prefix"`

	TimeoutSeconds int `json:"timeout_seconds"`
	// UserAgent is picked at random for each run when empty.
	UserAgent string `json:"user_agent"`

	Label         string `json:"label"`
	Zone          string `json:"zone"`
	TableSelector string `json:"table_selector"`
	TimeSelector  string `json:"time_selector"`

	Otlp telemetry.OtlpConfig `json:"otlp"`
}

func DefaultConfig() Config {
	return Config{
		Url:            dramexchange.DefaultUrl,
		LogDir:         snapshotlog.DefaultDir,
		Prefix:         snapshotlog.DefaultPrefix,
		TimeoutSeconds: 30,
		Label:          dramexchange.DefaultMarkers.Label,
		Zone:           dramexchange.DefaultMarkers.Zone,
		TableSelector:  dramexchange.DefaultTableSelector,
		TimeSelector:   dramexchange.DefaultTimeSelector,
	}
}

func (c Config) ClientOptions() dramexchange.ClientOptions {
	return dramexchange.ClientOptions{
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		TableSelector: c.TableSelector,
		TimeSelector:  c.TimeSelector,
		Markers: dramexchange.Markers{
			Label: c.Label,
			Zone:  c.Zone,
		},
	}
}
