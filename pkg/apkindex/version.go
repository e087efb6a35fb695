package apkindex

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// suffixRank orders apk version suffixes. Pre-release suffixes sort before
// a plain release (rank 0), post-release suffixes after it.
var suffixRank = map[string]int{
	"alpha": -4,
	"beta":  -3,
	"pre":   -2,
	"rc":    -1,
	"cvs":   1,
	"svn":   2,
	"git":   3,
	"hg":    4,
	"p":     5,
}

type suffix struct {
	rank int
	num  int
}

type version struct {
	nums     []int
	letter   byte
	suffixes []suffix
	rev      int
}

// CompareVersions compares two apk version strings and returns -1, 0 or +1.
//
// Ordering follows apk: dot-separated numeric components, an optional
// trailing letter, '_' suffixes (alpha < beta < pre < rc < release < cvs <
// svn < git < hg < p) and a '-rN' package revision. A '~hash' component is
// ignored. Strings that do not parse are compared lexically and sort before
// any well-formed version.
func CompareVersions(a, b string) int {
	va, okA := parseVersion(a)
	vb, okB := parseVersion(b)
	switch {
	case !okA && !okB:
		return cmp.Compare(a, b)
	case !okA:
		return -1
	case !okB:
		return 1
	}

	if c := slices.Compare(va.nums, vb.nums); c != 0 {
		return c
	}
	if c := cmp.Compare(va.letter, vb.letter); c != 0 {
		return c
	}
	for i := range max(len(va.suffixes), len(vb.suffixes)) {
		if c := compareSuffix(suffixAt(va.suffixes, i), suffixAt(vb.suffixes, i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(va.rev, vb.rev)
}

func suffixAt(s []suffix, i int) suffix {
	if i < len(s) {
		return s[i]
	}
	return suffix{}
}

func compareSuffix(a, b suffix) int {
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	return cmp.Compare(a.num, b.num)
}

func parseVersion(s string) (version, bool) {
	var v version
	s = strings.TrimSpace(s)
	if s == "" {
		return v, false
	}

	if i := strings.LastIndex(s, "-r"); i >= 0 {
		rev, err := strconv.Atoi(s[i+2:])
		if err != nil {
			return v, false
		}
		v.rev = rev
		s = s[:i]
	}
	if i := strings.IndexByte(s, '~'); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, "_")
	main := parts[0]
	if n := len(main); n > 0 && isLetter(main[n-1]) {
		v.letter = main[n-1]
		main = main[:n-1]
	}
	for _, field := range strings.Split(main, ".") {
		n, err := strconv.Atoi(field)
		if err != nil {
			return v, false
		}
		v.nums = append(v.nums, n)
	}

	for _, p := range parts[1:] {
		name := strings.TrimRightFunc(p, func(r rune) bool { return r >= '0' && r <= '9' })
		rank, ok := suffixRank[name]
		if !ok {
			return v, false
		}
		sfx := suffix{rank: rank}
		if digits := p[len(name):]; digits != "" {
			sfx.num, _ = strconv.Atoi(digits)
		}
		v.suffixes = append(v.suffixes, sfx)
	}
	return v, true
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
