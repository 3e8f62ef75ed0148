package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/dgraph-io/badger/v3"
)

// Conflict retry pacing. A transaction that lost an SSI conflict is re-run with
// jittered exponential backoff until it commits or the operation deadline passes.
const (
	defaultKVTimeout        = 5 * time.Second
	conflictInitialInterval = 200 * time.Microsecond
	conflictMaxInterval     = 20 * time.Millisecond
)

// ErrKVClosed is returned by PingContext once the store has been closed.
var ErrKVClosed = errors.New("kv store closed")

// txnKey is a context key type for storing badger transactions.
type txnKey struct{}

// KVConfig holds the embedded key-value store settings.
type KVConfig struct {
	Dir        string
	InMemory   bool
	GCInterval time.Duration
	Timeout    time.Duration
}

// KVStore is an embedded Badger database. Badger transactions are serializable
// (SSI): a transaction that read a key written by a concurrently committed one
// fails with badger.ErrConflict and WithTx runs it again on a fresh snapshot.
type KVStore struct {
	db      *badger.DB
	logger  *slog.Logger
	timeout time.Duration
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// OpenKV opens (or creates) the Badger database described by cfg.
func OpenKV(cfg KVConfig, logger *slog.Logger) (*KVStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, errors.New("badger: dir is required")
	}

	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger: logger}
	opts.DetectConflicts = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	s := &KVStore{
		db:      db,
		logger:  logger,
		timeout: cfg.Timeout,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	if cfg.InMemory || cfg.GCInterval <= 0 {
		close(s.doneCh)
	} else {
		go s.gcLoop(cfg.GCInterval)
	}

	logger.Info("badger store opened", slog.String("dir", cfg.Dir), slog.Bool("in_memory", cfg.InMemory))

	return s, nil
}

// Close stops value log GC and closes the database.
func (s *KVStore) Close() error {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.doneCh
	return s.db.Close()
}

// PingContext implements Pinger.
func (s *KVStore) PingContext(ctx context.Context) error {
	if s.db.IsClosed() {
		return ErrKVClosed
	}
	return ctx.Err()
}

// WithTx implements TxManager. fn may run more than once when it loses an SSI
// conflict, so it must not have side effects outside the store. Conflicts are
// retried until the operation timeout; any other error is returned as is.
func (s *KVStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(ctx)
	}

	timeout := s.timeout
	if timeout <= 0 {
		timeout = defaultKVTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	policy := &backoff.ExponentialBackOff{
		InitialInterval:     conflictInitialInterval,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         conflictMaxInterval,
	}
	policy.Reset()

	var failed error
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := s.runTxn(ctx, fn)
		if err != nil && !errors.Is(err, badger.ErrConflict) {
			failed = err
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(policy), backoff.WithMaxElapsedTime(timeout))
	if err != nil && failed == nil {
		return fmt.Errorf("badger: transaction kept conflicting for %s: %w", timeout, err)
	}
	return err
}

func (s *KVStore) runTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	txn := s.db.NewTransaction(true)
	defer txn.Discard()

	if err := fn(context.WithValue(ctx, txnKey{}, txn)); err != nil {
		return err
	}

	return txn.Commit()
}

// View runs fn against the transaction in ctx, or a read-only snapshot.
func (s *KVStore) View(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	return s.db.View(fn)
}

// Update runs fn against the transaction in ctx, or in a new read-write
// transaction with conflict retries.
func (s *KVStore) Update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if txn, ok := ctx.Value(txnKey{}).(*badger.Txn); ok {
		return fn(txn)
	}
	return s.WithTx(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txnKey{}).(*badger.Txn))
	})
}

// GetJSON decodes the value stored at key into v. It reports false when the key is absent.
func GetJSON(txn *badger.Txn, key string, v any) (bool, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}

// SetJSONWithExpiry is like SetJSON but the entry disappears at expiresAt, with
// one-second granularity.
func SetJSONWithExpiry(txn *badger.Txn, key string, v any, expiresAt time.Time) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := badger.NewEntry([]byte(key), data)
	e.ExpiresAt = uint64(expiresAt.Unix())
	return txn.SetEntry(e)
}

// Exists reports whether key is present.
func Exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ScanPrefix calls fn with every key and value under prefix. When reverse is set keys
// are visited in descending order. offset entries are skipped and at most limit are
// visited; limit <= 0 means no limit.
func ScanPrefix(
	txn *badger.Txn,
	prefix string,
	reverse bool,
	offset, limit int,
	fn func(key, value []byte) error,
) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.Reverse = reverse

	it := txn.NewIterator(opts)
	defer it.Close()

	seek := []byte(prefix)
	if reverse {
		// seek past the last key carrying the prefix
		seek = append(seek, 0xFF)
	}

	skipped, visited := 0, 0
	for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && visited >= limit {
			break
		}

		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
		visited++
	}

	return nil
}

func (s *KVStore) gcLoop(interval time.Duration) {
	defer close(s.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			for {
				if err := s.db.RunValueLogGC(0.5); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						s.logger.Warn("badger value log gc failed", slog.Any("error", err))
					}
					break
				}
			}
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
