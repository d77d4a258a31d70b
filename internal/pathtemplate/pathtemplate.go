// Package pathtemplate expands {name} placeholders in request path templates.
package pathtemplate

import (
	"fmt"
	"net/url"
	"strings"
)

// Expand substitutes every {name} segment in template with the matching value
// from vars, path-escaping each value. It fails on an unbound placeholder or
// an unterminated brace: both are declaration mistakes in the endpoint table.
func Expand(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			b.WriteString(template)
			return b.String(), nil
		}
		close := strings.IndexByte(template[open:], '}')
		if close < 0 {
			return "", fmt.Errorf("unterminated placeholder in path template %q", template)
		}
		close += open

		name := template[open+1 : close]
		if name == "" {
			return "", fmt.Errorf("empty placeholder in path template %q", template)
		}
		value, ok := vars[name]
		if !ok || value == "" {
			return "", fmt.Errorf("no value for path placeholder %q", name)
		}

		b.WriteString(template[:open])
		b.WriteString(url.PathEscape(value))
		template = template[close+1:]
	}
}
