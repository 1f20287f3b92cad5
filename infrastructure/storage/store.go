// Package storage implements contract.IStore on Badger and on SQLite.
package storage

import (
	"fmt"
	"log/slog"
	"persona-relay/contract"
	"persona-relay/errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"

	// MaxSelectorLength mirrors the column constraint of the SQLite schema.
	MaxSelectorLength = 254
)

type Options struct {
	Driver         string
	BadgerFilepath string
	SQLiteFilepath string
	ProvenanceTTL  time.Duration
}

// Open returns the store selected by opts.Driver.
func Open(opts Options, log *slog.Logger) (contract.IStore, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case DriverBadger, "":
		return OpenBadgerStore(opts.BadgerFilepath, opts.ProvenanceTTL, log)
	case DriverSQLite:
		return OpenSQLiteStore(opts.SQLiteFilepath, log)
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownStoreDriver, opts.Driver)
	}
}

func checkSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return errors.ErrEmptySelector
	}
	if utf8.RuneCountInString(selector) > MaxSelectorLength {
		return fmt.Errorf("selector longer than %d characters", MaxSelectorLength)
	}
	return nil
}
