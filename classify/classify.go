// Package classify maps a URL to the extraction strategy that understands
// its site family.
package classify

import (
	"net/url"
	"strings"
)

// Tag identifies an extraction strategy. The set is closed.
type Tag string

const (
	CodeHost Tag = "code_host"
	QAForum  Tag = "qa_forum"
	Docs     Tag = "docs"
	Generic  Tag = "generic"
)

// Tags lists every tag in rule order, Generic last.
var Tags = []Tag{CodeHost, QAForum, Docs, Generic}

func (t Tag) String() string { return string(t) }

// rule matches a URL by host suffix, host prefix or path segment.
type rule struct {
	tag          Tag
	hostSuffixes []string
	hostPrefixes []string
	pathSegments []string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{
		tag:          CodeHost,
		hostSuffixes: []string{"github.com", "gitlab.com", "bitbucket.org", "codeberg.org", "sr.ht"},
	},
	{
		tag: QAForum,
		hostSuffixes: []string{
			"stackoverflow.com", "stackexchange.com", "superuser.com",
			"serverfault.com", "askubuntu.com", "mathoverflow.net",
		},
	},
	{
		tag: Docs,
		hostSuffixes: []string{
			"readthedocs.io", "readthedocs.org", "gitbook.io",
			"developer.mozilla.org", "pkg.go.dev", "docs.rs",
		},
		hostPrefixes: []string{"docs.", "doc.", "documentation.", "developer.", "developers."},
		pathSegments: []string{"docs", "doc", "documentation", "reference", "api-reference"},
	},
}

// Classify returns the strategy tag for rawURL. It is pure and total:
// unparseable input and unmatched hosts yield Generic.
func Classify(rawURL string) Tag {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Generic
	}
	if u.Host == "" && u.Scheme == "" {
		// "github.com/x/y" parses as a bare path.
		if u, err = url.Parse("https://" + strings.TrimSpace(rawURL)); err != nil {
			return Generic
		}
	}

	host := strings.ToLower(u.Hostname())
	segments := strings.Split(strings.ToLower(strings.Trim(u.Path, "/")), "/")

	for _, r := range rules {
		if r.matches(host, segments) {
			return r.tag
		}
	}
	return Generic
}

func (r rule) matches(host string, segments []string) bool {
	for _, s := range r.hostSuffixes {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	for _, p := range r.hostPrefixes {
		if strings.HasPrefix(host, p) {
			return true
		}
	}
	for _, want := range r.pathSegments {
		for _, seg := range segments {
			if seg == want {
				return true
			}
		}
	}
	return false
}
