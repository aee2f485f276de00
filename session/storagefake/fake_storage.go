package fakestorage

import (
	"errors"
	"sync"

	"github.com/jrsteele09/starose-admin/session"
)

var _ session.Storage = (*FakeStorage)(nil)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected storage failure")

type FakeStorage struct {
	values     map[string]string
	lock       sync.RWMutex
	FailGet    bool
	FailSet    bool
	FailRemove bool
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		values: make(map[string]string),
	}
}

func (fs *FakeStorage) Get(key string) (string, bool, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.FailGet {
		return "", false, ErrInjected
	}
	value, ok := fs.values[key]
	return value, ok, nil
}

func (fs *FakeStorage) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.FailSet {
		return ErrInjected
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeStorage) Remove(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.FailRemove {
		return ErrInjected
	}
	delete(fs.values, key)
	return nil
}

// Has reports whether key is currently stored, bypassing failure injection.
func (fs *FakeStorage) Has(key string) bool {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	_, ok := fs.values[key]
	return ok
}
