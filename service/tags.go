package service

import (
	"regexp"
	"sort"
	"strings"

	"jansunwai/models"
)

// tagPattern matches @<RoleDisplayName>. Longer names come first in the
// alternation so "Collector Team Advanced" wins over "Collector Team", and
// the trailing \b keeps "@District Collectorate" from matching "District
// Collector".
var tagPattern = buildTagPattern()

func buildTagPattern() *regexp.Regexp {
	names := make([]string, 0, len(roleDisplayNames))
	for role, name := range roleDisplayNames {
		if role == models.RoleUser {
			continue // citizens are not taggable
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for i, name := range names {
		names[i] = regexp.QuoteMeta(name)
	}
	return regexp.MustCompile(`@(` + strings.Join(names, `|`) + `)\b`)
}

// ExtractTaggedRoles scans free-text remark content for @RoleName mentions
// and resolves them to canonical role identifiers. Output is de-duplicated
// in order of first appearance; unrecognized @something sequences are
// silently ignored.
func ExtractTaggedRoles(text string) []models.Role {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[models.Role]bool, len(matches))
	var roles []models.Role
	for _, m := range matches {
		role, ok := RoleByDisplayName(m[1])
		if !ok || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles
}
