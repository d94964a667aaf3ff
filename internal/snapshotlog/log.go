// Package snapshotlog stores snapshots as one CSV file per source-reported
// update minute, named <prefix>_<YYYYMMDD>_<HHMM>.csv. The directory listing is
// the only index.
package snapshotlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dramex-logger/internal/components/assert"
	"dramex-logger/internal/components/telemetry"
	"dramex-logger/internal/scrapers/dramexchange"
)

const (
	DefaultDir    = "./DRAMexchange_Log"
	DefaultPrefix = "DRAMexchange"

	fileExt = ".csv"
)

const (
	report_log_ensure_dir = "log.ensure-dir"
	report_log_write      = "log.write"
	report_log_list       = "log.list"
	report_log_series     = "log.load-series"
)

// PersistenceError is returned for any filesystem failure while creating the
// log directory or reading and writing snapshot files.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Log struct {
	Dir    string
	Prefix string

	tel telemetry.API
}

func New(dir, prefix string, tel telemetry.API) Log {
	assert.NotEmptyStr(dir)
	assert.NotEmptyStr(prefix)
	assert.NotNil(tel)

	return Log{
		Dir:    dir,
		Prefix: prefix,
		tel:    telemetry.NewScopedAPI("snapshotlog", tel),
	}
}

// Path returns the file a snapshot with the given token is stored at.
func (l Log) Path(token dramexchange.Token) string {
	return filepath.Join(l.Dir, fmt.Sprintf("%s_%s%s", l.Prefix, token.String(), fileExt))
}

// EnsureDir creates the log directory if it does not exist yet, it reports
// whether it had to be created.
func (l Log) EnsureDir() (created bool, err error) {
	info, err := os.Stat(l.Dir)
	if err == nil && info.IsDir() {
		l.tel.ReportInfo("log directory already exists, skipping creation", l.Dir)
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		l.tel.ReportBroken(report_log_ensure_dir, err, l.Dir)
		return false, &PersistenceError{Op: "stat", Path: l.Dir, Err: err}
	}

	err = os.MkdirAll(l.Dir, 0755)
	if err != nil {
		l.tel.ReportBroken(report_log_ensure_dir, err, l.Dir)
		return false, &PersistenceError{Op: "mkdir", Path: l.Dir, Err: err}
	}
	l.tel.ReportInfo("log directory created", l.Dir)
	return true, nil
}
