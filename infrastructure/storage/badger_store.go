package storage

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"persona-relay/domain"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
)

const (
	defaultPrefix    = "default:"
	provenancePrefix = "prov:"
)

type defaultRecord struct {
	Selector  string    `cbor:"selector"`
	UpdatedAt time.Time `cbor:"updated_at"`
}

type provenanceRecord struct {
	CreatedAt time.Time `cbor:"created_at"`
}

// BadgerStore keeps preferences under "default:{user}" and provenance under
// "prov:{user}:{message}". Provenance entries expire after ttl when ttl > 0.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	log *slog.Logger
	now func() time.Time
}

func NewBadgerStore(db *badger.DB, ttl time.Duration, log *slog.Logger) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl, log: log, now: time.Now}
}

// OpenBadgerStore opens the database at path.
func OpenBadgerStore(path string, ttl time.Duration, log *slog.Logger) (*BadgerStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("badger path is required")
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return NewBadgerStore(db, ttl, log), nil
}

func (s *BadgerStore) DB() *badger.DB {
	return s.db
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) GetDefaultSelector(ctx context.Context, userID string) (*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec defaultRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(defaultKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return cbor.Unmarshal(v, &rec)
		})
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading default selector: %w", err)
	}
	return &rec.Selector, nil
}

func (s *BadgerStore) SetDefaultSelector(ctx context.Context, userID, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSelector(selector); err != nil {
		return err
	}
	data, err := cbor.Marshal(defaultRecord{Selector: selector, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal default selector: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(defaultKey(userID), data)
	})
}

func (s *BadgerStore) UnsetDefaultSelector(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(defaultKey(userID))
	})
}

// RecordProvenance keeps the first record of a message.
func (s *BadgerStore) RecordProvenance(ctx context.Context, userID, messageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := cbor.Marshal(provenanceRecord{CreatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal provenance: %w", err)
	}
	key := provenanceKey(userID, messageID)
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !stdErrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		entry := badger.NewEntry(key, data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (s *BadgerStore) HasProvenance(ctx context.Context, userID, messageID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(provenanceKey(userID, messageID))
		return err
	})
	if stdErrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading provenance: %w", err)
	}
	return true, nil
}

// Preferences lists every stored default selector in key order.
func (s *BadgerStore) Preferences() ([]domain.UserPreference, error) {
	var prefs []domain.UserPreference
	err := s.scan(defaultPrefix, func(key string, v []byte) error {
		var rec defaultRecord
		if err := cbor.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		prefs = append(prefs, domain.UserPreference{
			UserID:    strings.TrimPrefix(key, defaultPrefix),
			Selector:  rec.Selector,
			UpdatedAt: rec.UpdatedAt,
		})
		return nil
	})
	return prefs, err
}

// Provenance lists the messages relayed for userID, or for everyone when
// userID is empty.
func (s *BadgerStore) Provenance(userID string) ([]domain.MessageProvenance, error) {
	prefix := provenancePrefix
	if userID != "" {
		prefix = string(provenanceKey(userID, ""))
	}
	var records []domain.MessageProvenance
	err := s.scan(prefix, func(key string, v []byte) error {
		var rec provenanceRecord
		if err := cbor.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("decoding %s: %w", key, err)
		}
		author, message, _ := strings.Cut(strings.TrimPrefix(key, provenancePrefix), ":")
		records = append(records, domain.MessageProvenance{AuthorID: author, MessageID: message, CreatedAt: rec.CreatedAt})
		return nil
	})
	return records, err
}

// CollectGarbage rewrites value log files until nothing is left to reclaim.
func (s *BadgerStore) CollectGarbage(discardRatio float64) (int, error) {
	rewrites := 0
	for {
		err := s.db.RunValueLogGC(discardRatio)
		if stdErrors.Is(err, badger.ErrNoRewrite) || stdErrors.Is(err, badger.ErrGCInMemoryMode) {
			return rewrites, nil
		}
		if err != nil {
			return rewrites, err
		}
		rewrites++
	}
}

func (s *BadgerStore) scan(prefix string, fn func(key string, value []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			if err := item.Value(func(v []byte) error { return fn(key, v) }); err != nil {
				return err
			}
		}
		return nil
	})
}

func defaultKey(userID string) []byte {
	return []byte(defaultPrefix + userID)
}

func provenanceKey(userID, messageID string) []byte {
	return []byte(provenancePrefix + userID + ":" + messageID)
}
