package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/speakeasy-api/schemagraph/graphlinter"
	"github.com/speakeasy-api/schemagraph/linter"
	"github.com/speakeasy-api/schemagraph/typegraph"
)

const readmeFile = "graphlinter/README.md"

func main() {
	if err := updateLintDocs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updateLintDocs() error {
	fmt.Println("🔄 Updating lint rules in README files...")

	if _, err := os.Stat(readmeFile); os.IsNotExist(err) {
		fmt.Printf("⚠️  No README file found: %s\n", readmeFile)
		return nil
	}

	docGen := linter.NewDocGenerator(graphlinter.NewLinter(nil).Registry())

	if err := updateReadmeFile(readmeFile, generateRulesTable(docGen)); err != nil {
		return fmt.Errorf("failed to update README: %w", err)
	}

	fmt.Printf("✅ Updated %s\n", readmeFile)
	fmt.Println("🎉 Lint docs updated successfully!")
	return nil
}

func generateRulesTable(docGen *linter.DocGenerator[*typegraph.Program]) string {
	docs := docGen.GenerateAllRuleDocs()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})

	var content strings.Builder
	content.WriteString("| Rule | Category | Severity | Rulesets | Description |\n")
	content.WriteString("|------|----------|----------|----------|-------------|\n")

	for _, doc := range docs {
		desc := strings.ReplaceAll(doc.Description, "|", "\\|")
		desc = strings.ReplaceAll(desc, "\n", " ")

		rule := fmt.Sprintf("`%s`", doc.ID)
		if doc.Link != "" {
			rule = fmt.Sprintf("[`%s`](%s)", doc.ID, doc.Link)
		}
		fmt.Fprintf(&content, "| <a name=\"%s\"></a>%s | %s | %s | %s | %s |\n",
			doc.ID, rule, doc.Category, doc.DefaultSeverity, strings.Join(doc.Rulesets, ", "), desc)
	}

	return content.String()
}

func updateReadmeFile(filename, newContent string) error {
	data, err := os.ReadFile(filename) //nolint:gosec
	if err != nil {
		return err
	}

	content := string(data)

	startMarker := "<!-- START LINT RULES -->"
	endMarker := "<!-- END LINT RULES -->"

	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)

	if startIdx == -1 || endIdx == -1 {
		return fmt.Errorf("could not find lint rules markers in %s", filename)
	}

	before := content[:startIdx+len(startMarker)]
	after := content[endIdx:]

	return os.WriteFile(filename, []byte(before+"\n\n"+newContent+"\n"+after), 0o600)
}
