package schema

import (
	"regexp"
	"sync"
)

// compilePattern compiles an ECMA-style pattern string with regexp.Compile
// for use by patternProperties and pattern. Results are cached since a
// pattern keyword's Evaluate may run once per instance property, not once
// per compile.
var (
	patternCacheMu sync.Mutex
	patternCache   = make(map[string]*regexp.Regexp)
)

func compilePattern(pattern string) (*regexp.Regexp, error) {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()

	if re, ok := patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache[pattern] = re
	return re, nil
}
