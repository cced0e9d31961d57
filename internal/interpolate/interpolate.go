package interpolate

import (
	"fmt"
	"regexp"
	"strings"

	"dexit/pkg/logging"

	"k8s.io/client-go/util/jsonpath"
)

// tokenPattern matches ${...} references whose body is restricted to
// letters, digits, and the characters . _ [ ] * @ ? > < = !, e.g.
// ${body.token} or ${items[0].id}. Parentheses and quotes are not in the
// set, so a JSONPath filter such as ?(@.name=="primary") is not matched.
var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z0-9._\[\]*@?><=!]+)\}`)

// Interpolator resolves ${jsonpath} tokens against a data value. It holds
// no state; the compiled token pattern is a package-level variable.
type Interpolator struct{}

// New creates an Interpolator.
func New() *Interpolator {
	return &Interpolator{}
}

// Resolve walks value recursively, replacing ${...} tokens found in any
// string against data. Maps and slices are resolved element-wise,
// preserving keys/order; other scalars are returned unchanged.
func (p *Interpolator) Resolve(data interface{}, value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return p.resolveString(data, v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = p.Resolve(data, val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = p.Resolve(data, val)
		}
		return out
	default:
		return value
	}
}

// resolveString handles the two substitution modes: exact-token (the
// entire string is one ${...} token, original type preserved) and mixed
// text (each token is coerced to its string form and spliced in).
func (p *Interpolator) resolveString(data interface{}, s string) interface{} {
	matches := tokenPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		path := s[matches[0][2]:matches[0][3]]
		value, ok := p.evaluate(data, path)
		if !ok {
			return nil
		}
		return value
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		path := s[m[2]:m[3]]
		if value, ok := p.evaluate(data, path); ok {
			b.WriteString(coerce(value))
		}
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// evaluate runs a single JSONPath expression against data, rooted the way
// the token grammar implies: "$." followed by the captured path.
func (p *Interpolator) evaluate(data interface{}, path string) (interface{}, bool) {
	jp := jsonpath.New("interpolate")
	jp.AllowMissingKeys(true)

	if err := jp.Parse("{$." + path + "}"); err != nil {
		logging.Debug("Interpolator", "failed to parse path %q: %v", path, err)
		return nil, false
	}

	results, err := jp.FindResults(data)
	if err != nil {
		logging.Debug("Interpolator", "path %q did not resolve: %v", path, err)
		return nil, false
	}
	if len(results) == 0 || len(results[0]) == 0 {
		return nil, false
	}

	return results[0][0].Interface(), true
}

func coerce(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
