package script

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sync"

	"github.com/pkg/errors"
)

// RegexMap is the compiled-regex registry every script receives as its
// regex_map argument (§4.N): source pattern strings keyed by a
// caller-chosen id.
type RegexMap map[string]string

// regexCache is the process-wide compiled-pattern cache §9 calls out as
// one of the two pieces of global mutable state this package owns.
var regexCache sync.Map // pattern string -> *regexp.Regexp

func compile(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid regex %q", pattern)
	}
	regexCache.Store(pattern, re)
	return re, nil
}

// Compiled resolves every pattern in m to a *regexp.Regexp, reusing the
// process-wide cache so repeated calls with the same pattern set never
// recompile.
func (m RegexMap) Compiled() (map[string]*regexp.Regexp, error) {
	out := make(map[string]*regexp.Regexp, len(m))
	for id, pattern := range m {
		re, err := compile(pattern)
		if err != nil {
			return nil, err
		}
		out[id] = re
	}
	return out, nil
}

// resultCache is the second piece of global mutable state §9 describes:
// memoised script outputs keyed by a content hash of (script source, regex
// sources, inputs).
var resultCache sync.Map

func contentHash(parts ...interface{}) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		// Encode errors (e.g. an un-encodable type) are treated as cache
		// misses, not failures: the hash simply won't match anything.
		_ = enc.Encode(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func cacheLoad(key string) (interface{}, bool) {
	return resultCache.Load(key)
}

func cacheStore(key string, value interface{}) {
	resultCache.Store(key, value)
}
