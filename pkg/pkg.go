// Package pkg holds identity and filesystem metadata shared by the lox
// command and its subpackages.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default paths and environment
	// variable names.
	Name = "lox"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Tree-walking interpreter for a small scripting language"
	// Extension is the conventional file extension of script files.
	Extension = ".lox"
)

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
