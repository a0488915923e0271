package catalog

import (
	"sort"
	"strconv"

	"github.com/lactec/intranet/internal/domain"
)

// Index names.
const (
	IndexUID            = "UID"
	IndexPortalType     = "portal_type"
	IndexPath           = "path"
	IndexTitle          = "Title"
	IndexDescription    = "Description"
	IndexExcludeFromNav = "exclude_from_nav"
	IndexArea           = "area"
	IndexCargo          = "cargo"
	IndexEmail          = "email"
)

// Indexer extracts the value an item contributes to one index. It returns
// false when the item has nothing to index.
type Indexer func(obj *domain.Content) (string, bool)

var indexers = map[string]Indexer{
	IndexUID:         func(obj *domain.Content) (string, bool) { return obj.UID, obj.UID != "" },
	IndexPortalType:  func(obj *domain.Content) (string, bool) { return obj.PortalType, obj.PortalType != "" },
	IndexPath:        func(obj *domain.Content) (string, bool) { return obj.Path(), true },
	IndexTitle:       func(obj *domain.Content) (string, bool) { return obj.Title, obj.Title != "" },
	IndexDescription: func(obj *domain.Content) (string, bool) { return obj.Description, obj.Description != "" },
	IndexExcludeFromNav: func(obj *domain.Content) (string, bool) {
		return strconv.FormatBool(obj.ExcludeFromNav), true
	},
	IndexArea:  fieldIndexer(domain.FieldArea),
	IndexCargo: fieldIndexer(domain.FieldCargo),
	IndexEmail: fieldIndexer(domain.FieldEmail),
}

func fieldIndexer(field string) Indexer {
	return func(obj *domain.Content) (string, bool) {
		value := obj.Field(field)
		return value, value != ""
	}
}

// IndexNames lists every index the catalog maintains, sorted.
func IndexNames() []string {
	names := make([]string, 0, len(indexers))
	for name := range indexers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasIndex reports whether name is a catalog index.
func HasIndex(name string) bool {
	_, ok := indexers[name]
	return ok
}
