package tariff

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// mdConverter renders HTML tables back into pipe markdown. Narrative
// collaborators are asked for markdown only, but do not always comply.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// cleanNarrativeTable strips code fences from a collaborator response and
// converts HTML tables to markdown, leaving a parseable table block.
func cleanNarrativeTable(s string) string {
	s = stripCodeFences(strings.TrimSpace(s))
	if !strings.Contains(strings.ToLower(s), "<table") {
		return s
	}
	md, err := mdConverter.ConvertString(s)
	if err != nil || strings.TrimSpace(md) == "" {
		return s
	}
	return strings.TrimSpace(md)
}

func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
