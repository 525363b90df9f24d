package linter

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// DocGenerator renders the rule reference printed by `schemagraph rules`.
type DocGenerator[T any] struct {
	registry *Registry[T]
}

func NewDocGenerator[T any](registry *Registry[T]) *DocGenerator[T] {
	return &DocGenerator[T]{registry: registry}
}

// RuleDoc is the documented form of a registered rule.
type RuleDoc struct {
	ID              string   `json:"id" yaml:"id"`
	Category        string   `json:"category" yaml:"category"`
	Summary         string   `json:"summary" yaml:"summary"`
	Description     string   `json:"description" yaml:"description"`
	Rationale       string   `json:"rationale,omitempty" yaml:"rationale,omitempty"`
	Link            string   `json:"link,omitempty" yaml:"link,omitempty"`
	DefaultSeverity string   `json:"default_severity" yaml:"default_severity"`
	GoodExample     string   `json:"good_example,omitempty" yaml:"good_example,omitempty"`
	BadExample      string   `json:"bad_example,omitempty" yaml:"bad_example,omitempty"`
	Rulesets        []string `json:"rulesets" yaml:"rulesets"`
}

func (g *DocGenerator[T]) GenerateRuleDoc(rule RuleRunner[T]) *RuleDoc {
	doc := &RuleDoc{
		ID:              rule.ID(),
		Category:        rule.Category(),
		Summary:         rule.Summary(),
		Description:     rule.Description(),
		Link:            rule.Link(),
		DefaultSeverity: rule.DefaultSeverity().String(),
		Rulesets:        g.registry.RulesetsContaining(rule.ID()),
	}

	if documented, ok := any(rule).(DocumentedRule); ok {
		doc.GoodExample = documented.GoodExample()
		doc.BadExample = documented.BadExample()
		doc.Rationale = documented.Rationale()
	}

	return doc
}

// GenerateAllRuleDocs documents every registered rule in ID order.
func (g *DocGenerator[T]) GenerateAllRuleDocs() []*RuleDoc {
	var docs []*RuleDoc
	for _, rule := range g.registry.AllRules() {
		docs = append(docs, g.GenerateRuleDoc(rule))
	}
	return docs
}

// GenerateCategoryDocs groups GenerateAllRuleDocs by category, keeping ID order within each.
func (g *DocGenerator[T]) GenerateCategoryDocs() map[string][]*RuleDoc {
	categories := make(map[string][]*RuleDoc)
	for _, doc := range g.GenerateAllRuleDocs() {
		categories[doc.Category] = append(categories[doc.Category], doc)
	}
	return categories
}

func (g *DocGenerator[T]) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"rules":      g.GenerateAllRuleDocs(),
		"categories": g.registry.AllCategories(),
		"rulesets":   g.registry.AllRulesets(),
	})
}

// WriteMarkdown writes the rule reference: an index of categories, the members of every named
// ruleset, then each category's rules. Categories are sorted by name.
func (g *DocGenerator[T]) WriteMarkdown(w io.Writer) error {
	byCategory := g.GenerateCategoryDocs()
	categories := slices.Sorted(maps.Keys(byCategory))

	md := &markdownWriter{w: w}

	md.printf("# Type Graph Lint Rules\n\n")

	md.printf("## Categories\n\n")
	for _, c := range categories {
		md.printf("- [%s](#%s) (%d)\n", c, c, len(byCategory[c]))
	}
	md.printf("\n")

	md.printf("## Rulesets\n\n")
	for _, name := range g.registry.AllRulesets() {
		if name == RulesetAll {
			continue
		}
		ids, _ := g.registry.GetRuleset(name)
		links := make([]string, 0, len(ids))
		for _, id := range ids {
			links = append(links, fmt.Sprintf("[%s](#%s)", id, id))
		}
		md.printf("- `%s`: %s\n", name, strings.Join(links, ", "))
	}
	md.printf("- `%s`: every rule\n\n", RulesetAll)

	for _, c := range categories {
		md.printf("## %s\n\n", c)
		for _, rule := range byCategory[c] {
			md.rule(rule)
		}
	}

	return md.err
}

// markdownWriter keeps the first write error and skips everything after it.
type markdownWriter struct {
	w   io.Writer
	err error
}

func (m *markdownWriter) printf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

func (m *markdownWriter) rule(rule *RuleDoc) {
	m.printf("### %s\n\n", rule.ID)
	m.printf("**Severity:** %s  \n", rule.DefaultSeverity)
	if rule.Summary != "" {
		m.printf("**Summary:** %s  \n", rule.Summary)
	}
	m.printf("**Rulesets:** %s\n\n", strings.Join(rule.Rulesets, ", "))

	m.printf("%s\n\n", rule.Description)

	if rule.Rationale != "" {
		m.printf("#### Why\n\n%s\n\n", rule.Rationale)
	}
	m.snapshot("#### ❌ Reported", rule.BadExample)
	m.snapshot("#### ✅ Accepted", rule.GoodExample)

	if rule.Link != "" {
		m.printf("[Documentation →](%s)\n\n", rule.Link)
	}
	m.printf("---\n\n")
}

func (m *markdownWriter) snapshot(heading, excerpt string) {
	if excerpt == "" {
		return
	}
	m.printf("%s\n```yaml\n%s\n```\n\n", heading, excerpt)
}
