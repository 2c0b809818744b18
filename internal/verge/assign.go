// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package verge

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const themePrefix = "theme_setting."

// ParseAssignments builds a patch from "key=value" pairs. Values are read as
// YAML scalars, so "true" becomes a bool and "30" a number. Theme keys are
// addressed as "theme_setting.<key>"; any theme key makes the patch carry a
// theme block, which replaces the stored one as a whole.
func ParseAssignments(pairs []string) (Config, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	var theme *yaml.Node
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return Config{}, fmt.Errorf("assignment must be key=value: %q", pair)
		}
		if _, dup := seen[key]; dup {
			return Config{}, fmt.Errorf("duplicate assignment for %q", key)
		}
		seen[key] = struct{}{}

		if sub, isTheme := strings.CutPrefix(key, themePrefix); isTheme {
			if !slices.Contains(ThemeKeys(), sub) {
				return Config{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
			}
			if theme == nil {
				theme = &yaml.Node{Kind: yaml.MappingNode}
				root.Content = append(root.Content, keyNode("theme_setting"), theme)
			}
			// Theme values are opaque strings; "#fff" must not become a comment.
			theme.Content = append(theme.Content, keyNode(sub),
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
			continue
		}

		if key == "theme_setting" || !slices.Contains(Keys(), key) {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		root.Content = append(root.Content, keyNode(key),
			&yaml.Node{Kind: yaml.ScalarNode, Value: value})
	}

	var patch Config
	if err := root.Decode(&patch); err != nil {
		return Config{}, fmt.Errorf("decode assignments: %w", err)
	}
	return patch, nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}
