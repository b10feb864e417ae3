package main

import (
	"github.com/dshills/astar-go/search/store"
)

// openArchive opens the report store named by setting. An empty setting
// means no archive and returns a nil Store.
func openArchive(setting string) (store.Store, error) {
	if setting == "" {
		return nil, nil
	}
	kind, location, err := parseArchive(setting)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "sqlite":
		s, err := store.NewSQLiteStore(location)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mysql":
		s, err := store.NewMySQLStore(location)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return store.NewMemStore(), nil
	}
}
