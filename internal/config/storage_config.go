package config

import "strings"

type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQLite StorageBackend = "sqlite"
)

const storageBackendEnvVar = "STORAGE_BACKEND"

type Storage struct {
	file *fileValues
}

var _ StorageConfig = Storage{}

func (s Storage) GetStorageBackend() StorageBackend {
	switch StorageBackend(strings.ToLower(lookup(storageBackendEnvVar, s.file.Storage.Backend, ""))) {
	case StorageBackendSQLite:
		return StorageBackendSQLite
	default:
		return StorageBackendFile
	}
}
