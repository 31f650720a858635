//go:build tools
// +build tools

// Package tools tracks code generators (mockgen) as module dependencies.
package catclassifier

import (
	_ "go.uber.org/mock/mockgen"
)
