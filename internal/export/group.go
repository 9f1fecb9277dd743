package export

import (
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// TagGroups is the result of one grouping pass over an endpoint list. The
// Markdown and HTML exporters both consume it, so a table of contents and the
// matching body sections are always generated from the same grouping and
// cannot drift apart.
type TagGroups struct {
	tags   []string
	byName map[string][]model.Endpoint
}

// GroupByTag fans endpoints out into tag groups: an endpoint with N tags
// appears under all N groups, an endpoint with none appears under
// model.DefaultTagGroup. Group order is first-seen across the input;
// endpoints keep their input order within each group.
func GroupByTag(endpoints []model.Endpoint) *TagGroups {
	g := &TagGroups{byName: make(map[string][]model.Endpoint)}
	for _, ep := range endpoints {
		tags := ep.Tags
		if len(tags) == 0 {
			tags = []string{model.DefaultTagGroup}
		}
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				tag = model.DefaultTagGroup
			}
			if _, seen := g.byName[tag]; !seen {
				g.tags = append(g.tags, tag)
			}
			g.byName[tag] = append(g.byName[tag], ep)
		}
	}
	return g
}

// Tags returns the group names in first-seen order.
func (g *TagGroups) Tags() []string { return g.tags }

// Endpoints returns the endpoints grouped under tag, in input order.
func (g *TagGroups) Endpoints(tag string) []model.Endpoint { return g.byName[tag] }

// anchorSlug builds the Markdown anchor for an endpoint:
// lowercase(method) + "-" + path with every non-alphanumeric rune replaced
// by "-". Tags differing only in case can slug identically; both sections
// still render, in first-seen order.
func anchorSlug(ep *model.Endpoint) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(ep.Method)))
	b.WriteByte('-')
	for _, r := range ep.Path {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
