package dot

import (
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxUIDLength is the maximum length of a graph UID.
const MaxUIDLength = 30

// Context allocates node IDs and graph UIDs for one documentation run.
//
// A Context is safe for concurrent use, but IDs are only unique within a
// single Context: graphs from different contexts may share UIDs.
type Context struct {
	mu     sync.Mutex
	nextID int
	uids   map[string]struct{}
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{uids: make(map[string]struct{})}
}

// NewGraph creates a graph whose UID is derived from title and reserved in c.
func (c *Context) NewGraph(title string, opts ...Option) *Graph {
	g := &Graph{
		Title:        title,
		UID:          c.reserveUID(title),
		NodeDefaults: Attrs{},
		EdgeDefaults: Attrs{},
		ctx:          c,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// UIDs reports how many graph UIDs have been reserved.
func (c *Context) UIDs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.uids)
}

func (c *Context) allocID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	return id
}

func (c *Context) reserveUID(title string) string {
	base := sanitizeUID(title)

	c.mu.Lock()
	defer c.mu.Unlock()

	uid := base
	for n := 2; c.taken(uid); n++ {
		suffix := "_" + strconv.Itoa(n)
		b := base
		if len(b)+len(suffix) > MaxUIDLength {
			b = b[:MaxUIDLength-len(suffix)]
		}
		uid = b + suffix
	}
	c.uids[uid] = struct{}{}
	return uid
}

func (c *Context) taken(uid string) bool {
	_, ok := c.uids[uid]
	return ok
}

// foldMarks strips combining marks after compatibility decomposition, so
// "Überblick" becomes "Uberblick" and "ﬁle" becomes "file".
var foldMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// sanitizeUID turns a title into a DOT identifier: ASCII word characters
// only, lower case, at most MaxUIDLength bytes, never starting with a digit.
func sanitizeUID(title string) string {
	folded, _, err := transform.String(foldMarks, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}

	uid := b.String()
	if uid == "" {
		uid = "graph"
	}
	if uid[0] >= '0' && uid[0] <= '9' {
		uid = "g" + uid
	}
	if len(uid) > MaxUIDLength {
		uid = uid[:MaxUIDLength]
	}
	return uid
}
