package assistant

import (
	"encoding/json"
	"strings"

	"github.com/brickmind/brickmind/internal/catalog"
)

// BuildPrompt renders the expert-assistant prompt from the three context
// sources plus the user query. Set lists are serialized as JSON so the
// model sees exact field values.
func BuildPrompt(structured, semantic, apiData []catalog.Set, query, notes string) string {
	var b strings.Builder
	b.WriteString("You are a LEGO expert assistant. Use the following context to answer the user's query:\n")
	b.WriteString("Structured Data: ")
	b.WriteString(renderSets(structured))
	b.WriteString("\nSemantic Search Results: ")
	b.WriteString(renderSets(semantic))
	b.WriteString("\nAPI Data: ")
	b.WriteString(renderSets(apiData))
	if notes != "" {
		b.WriteString("\nCollector Notes: ")
		b.WriteString(notes)
	}
	b.WriteString("\nUser Query: ")
	b.WriteString(query)
	b.WriteString("\nProvide a concise, informative response for LEGO collectors.")
	return b.String()
}

func renderSets(sets []catalog.Set) string {
	if len(sets) == 0 {
		return "[]"
	}
	data, err := json.Marshal(sets)
	if err != nil {
		return "[]"
	}
	return string(data)
}
