package resource

import (
	"sync"

	"github.com/gertd/go-pluralize"
)

var (
	inflector      = pluralize.NewClient()
	inflectorMutex sync.RWMutex
)

// Plural returns the plural form of word.
func Plural(word string) string {
	inflectorMutex.RLock()
	defer inflectorMutex.RUnlock()
	return inflector.Plural(word)
}

// Singular returns the singular form of word.
func Singular(word string) string {
	inflectorMutex.RLock()
	defer inflectorMutex.RUnlock()
	return inflector.Singular(word)
}

// RegisterIrregular adds a singular/plural pair to the pluralization table.
// Kinds whose nouns do not follow the English rules must be registered here
// before they are registered with Register.
func RegisterIrregular(singular, plural string) {
	inflectorMutex.Lock()
	defer inflectorMutex.Unlock()
	inflector.AddIrregularRule(singular, plural)
}
