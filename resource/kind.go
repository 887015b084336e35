// Package resource defines the vocabulary shared by every layer of the
// resource-state module: resource kinds, request kinds, lifecycle statuses,
// the action-type identifiers derived from them, and stored entries.
package resource

import (
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a managed resource type by its plural, lower-case noun.
type Kind string

const (
	KindOrganization Kind = "organizations"
	KindProject      Kind = "projects"
	KindSite         Kind = "sites"
)

// Plural returns the plural noun, which is the kind's canonical form.
func (k Kind) Plural() string {
	return string(k)
}

// Singular returns the singular noun ("projects" -> "project").
func (k Kind) Singular() string {
	return Singular(string(k))
}

// SnakeName returns the word-separated, lower-case form used inside
// action-type identifiers.
func (k Kind) SnakeName() string {
	return strcase.ToSnake(string(k))
}

// DisplayName returns the singular noun in title case ("Project"), used in
// user-facing notifications.
func (k Kind) DisplayName() string {
	words := strings.Split(strcase.ToSnake(k.Singular()), "_")
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func (k Kind) String() string {
	return string(k)
}
