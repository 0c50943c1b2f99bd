package goengine

import (
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Profile describes the stdlib surface an engine exposes to submitted
// code.
type Profile struct {
	// Name identifies the profile in logs and error messages.
	Name string

	// AllowedPackages lists the stdlib import paths whose symbols are
	// installed. A nil map installs the full stdlib table.
	AllowedPackages map[string]bool

	// DeniedPackages lists import paths rejected at declaration time,
	// including all of their subpackages.
	DeniedPackages []string
}

// deniedPackages is the default denied list. The restricted allow-list
// already omits all of these; the explicit check produces a clear
// failure instead of a missing-symbol error.
var deniedPackages = []string{
	"os/exec",
	"syscall",
	"unsafe",
	"plugin",
	"reflect",
	"net",
	"net/http",
}

// Restricted returns the default profile: a text, math, time and
// encoding slice of the stdlib.
func Restricted() Profile {
	return Profile{
		Name: "restricted",
		AllowedPackages: map[string]bool{
			"bytes":           true,
			"encoding/base64": true,
			"encoding/json":   true,
			"errors":          true,
			"fmt":             true,
			"math":            true,
			"regexp":          true,
			"sort":            true,
			"strconv":         true,
			"strings":         true,
			"time":            true,
			"unicode":         true,
			"unicode/utf8":    true,
		},
		DeniedPackages: deniedPackages,
	}
}

// Open returns a profile exposing the full stdlib symbol table. The
// denied list still applies.
func Open() Profile {
	return Profile{Name: "open", DeniedPackages: deniedPackages}
}

// symbols returns the stdlib symbol table filtered to the profile's
// allow-list.
func (p Profile) symbols() interp.Exports {
	if p.AllowedPackages == nil {
		return stdlib.Symbols
	}
	out := make(interp.Exports, len(p.AllowedPackages))
	for key, syms := range stdlib.Symbols {
		if p.AllowedPackages[pkgPath(key)] {
			out[key] = syms
		}
	}
	return out
}

// denies reports whether path falls under the profile's denied list.
func (p Profile) denies(path string) bool {
	for _, d := range p.DeniedPackages {
		if path == d || strings.HasPrefix(path, d+"/") {
			return true
		}
	}
	return false
}

// pkgPath strips the trailing package-name segment from a symbol-table
// key such as "encoding/json/json".
func pkgPath(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i]
	}
	return key
}
