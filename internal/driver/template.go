package driver

import (
	"fmt"
	"regexp"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// placeholderRegex matches {name} placeholders in login command templates.
var placeholderRegex = regexp.MustCompile(`\{([a-z]+)\}`)

// Placeholders returns the distinct placeholder names in a template, in
// order of first appearance.
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, match := range placeholderRegex.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// RenderTemplate substitutes vars into a login command template. It fails if
// any placeholder has no corresponding variable, so a malformed template or
// an incomplete variable set is caught before anything is executed.
func RenderTemplate(template string, vars map[string]string) (string, error) {
	var unresolved []string

	rendered := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.Trim(match, "{}")
		value, ok := vars[name]
		if !ok {
			unresolved = append(unresolved, name)
			return match
		}
		return value
	})

	if len(unresolved) > 0 {
		return "", fmt.Errorf("unresolved placeholders in login template: %s", strings.Join(unresolved, ", "))
	}

	return rendered, nil
}

// LoginArgv renders a login template and splits it into an argv suitable for
// process execution.
func LoginArgv(template string, vars map[string]string) ([]string, error) {
	rendered, err := RenderTemplate(template, vars)
	if err != nil {
		return nil, err
	}

	argv, err := shellquote.Split(rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to split login command %q: %w", rendered, err)
	}

	return argv, nil
}
