package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/investwise"
)

//go:embed templates/*.md
var templates embed.FS

// ProfileMarkdown renders a risk profile and its target allocation.
func ProfileMarkdown(p investwise.RiskProfile) string {
	partials := map[string]string{
		"allocation": "allocation.md",
	}
	return renderTemplate("profile", "profile.md", partials, p)
}

// SnapshotMarkdown renders the monthly finances.
func SnapshotMarkdown(s investwise.FinancialSnapshot) string {
	return renderTemplate("snapshot", "snapshot.md", nil, s)
}

// SuggestionsMarkdown renders suggested investments by category.
func SuggestionsMarkdown(suggestions []investwise.Suggestion) string {
	return renderTemplate("suggestions", "suggestions.md", nil, suggestions)
}

// PlanMarkdown renders the complete plan of a user.
func PlanMarkdown(s investwise.State) string {
	partials := map[string]string{
		"snapshot":    "snapshot.md",
		"profile":     "profile.md",
		"allocation":  "allocation.md",
		"split":       "split.md",
		"suggestions": "suggestions.md",
	}
	// Skip what the user has not done yet. An empty file name results in an empty template.
	if !s.HasCompletedRiskAssessment {
		partials["profile"] = "profile_missing.md"
		partials["split"] = ""
	}
	return renderTemplate("plan", "plan.md", partials, NewPlan(s))
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
