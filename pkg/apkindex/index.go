package apkindex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned by [Parse] when a non-empty line is not a
// "key:value" pair.
var ErrMalformed = errors.New("malformed index line")

// maxLineSize bounds a single index line. Provides lists of large packages
// (linux-firmware, perl) exceed bufio's 64KiB default.
const maxLineSize = 1 << 20

// Package is one record of an APKINDEX.
//
// Depends and Provides hold bare names: version constraints are stripped
// and conflict tokens ('!foo') are dropped. Order and duplicates are kept
// as written in the index.
type Package struct {
	Name          string   // P: package name
	Version       string   // V: package version
	Arch          string   // A: architecture
	Description   string   // T: one-line description
	URL           string   // U: project URL
	License       string   // L: license expression
	Origin        string   // o: origin (source) package
	Maintainer    string   // m: maintainer
	Size          int64    // S: archive size in bytes
	InstalledSize int64    // I: installed size in bytes
	Depends       []string // D: direct dependency names
	Provides      []string // p: provided names (so:, cmd:, pc:, virtuals)
}

// Parse reads an APKINDEX text stream. Records without a P: line are
// skipped; unknown keys are ignored.
func Parse(r io.Reader) ([]Package, error) {
	var (
		pkgs []Package
		cur  Package
		seen bool
	)
	flush := func() {
		if seen && cur.Name != "" {
			pkgs = append(pkgs, cur)
		}
		cur, seen = Package{}, false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, lineNo, line)
		}
		seen = true
		setField(&cur, key, strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	flush()
	return pkgs, nil
}

func setField(p *Package, key, value string) {
	switch key {
	case "P":
		p.Name = value
	case "V":
		p.Version = value
	case "A":
		p.Arch = value
	case "T":
		p.Description = value
	case "U":
		p.URL = value
	case "L":
		p.License = value
	case "o":
		p.Origin = value
	case "m":
		p.Maintainer = value
	case "S":
		p.Size, _ = strconv.ParseInt(value, 10, 64)
	case "I":
		p.InstalledSize, _ = strconv.ParseInt(value, 10, 64)
	case "D":
		p.Depends = DependencyNames(value)
	case "p":
		p.Provides = DependencyNames(value)
	}
}

// DependencyNames splits a D: (or p:) field into bare names, stripping
// version constraints and dropping conflict tokens.
func DependencyNames(field string) []string {
	var names []string
	for _, tok := range strings.Fields(field) {
		if strings.HasPrefix(tok, "!") {
			continue
		}
		if name := StripConstraint(tok); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// StripConstraint returns the bare name of a dependency token by cutting at
// the first version operator: "foo>=1.2.3" becomes "foo", "so:libz.so.1=1.3"
// becomes "so:libz.so.1".
func StripConstraint(token string) string {
	if i := strings.IndexAny(token, "<>=~"); i >= 0 {
		token = token[:i]
	}
	return strings.TrimSpace(token)
}
