// Package contract declares every HTTP operation of the site once: method,
// path template, input parser and the response shape per status code.
//
// The server registers its handlers from these descriptors and the client
// validates what it sends and what it receives against the very same values,
// so the two sides cannot silently disagree.
package contract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// NoInput marks an operation that accepts neither a body nor a query
type NoInput struct{}

// InputFunc parses and validates the input of an operation
type InputFunc[In any] func(body []byte, query url.Values) (In, error)

// Route describes one operation
type Route[In any] struct {
	Name      string
	Method    string
	Path      string
	Input     InputFunc[In]
	Responses map[int]Validator
}

// Parse runs the route's input parser. Routes without one yield the zero In.
func (r Route[In]) Parse(body []byte, query url.Values) (In, error) {
	if r.Input == nil {
		var zero In
		return zero, nil
	}
	return r.Input(body, query)
}

// Declares reports whether status is one of the route's declared responses
func (r Route[In]) Declares(status int) bool {
	_, ok := r.Responses[status]
	return ok
}

// Check validates a response body against the validator declared for status
func (r Route[In]) Check(status int, body []byte) error {
	v, ok := r.Responses[status]
	if !ok {
		return fmt.Errorf("%s: undeclared response status %d", r.Name, status)
	}
	if err := v(body); err != nil {
		return fmt.Errorf("%s: response %d does not match contract: %w", r.Name, status, err)
	}
	return nil
}

// URL resolves the route's path template with params
func (r Route[In]) URL(params map[string]string) string {
	return BuildURL(r.Path, params)
}

var placeholder = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// BuildURL substitutes :name placeholders in path with escaped param values.
// It panics when a placeholder has no value: that is a programming error.
func BuildURL(path string, params map[string]string) string {
	return placeholder.ReplaceAllStringFunc(path, func(m string) string {
		name := m[1:]
		v, ok := params[name]
		if !ok {
			panic(fmt.Sprintf("contract: unresolved placeholder %q in %s", name, path))
		}
		return url.PathEscape(v)
	})
}

// Pattern converts a path template into a chi route pattern (:id -> {id})
func Pattern(path string) string {
	return placeholder.ReplaceAllString(path, "{$1}")
}

// Placeholders lists the placeholder names of a path template in order
func Placeholders(path string) []string {
	matches := placeholder.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// WithQuery appends encoded query values to a resolved path
func WithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}
