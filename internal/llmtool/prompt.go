package llmtool

import (
	"bytes"
	"fmt"
	"strings"
)

// ToolSpec names a callable tool the model may pick during generation.
type ToolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// buildPrompt renders the generation prompt with bracketed sections:
// the caller's task text, the output contract, and any offered tools.
func buildPrompt(req Request) string {
	var buf bytes.Buffer
	writeSection(&buf, "TASK", req.Prompt)
	writeSection(&buf, "OUTPUT", formatFields(req.Schema.Fields))
	writeSection(&buf, "TOOLS", formatToolSpecs(req.Tools))
	writeSection(&buf, "OUTPUT_FORMAT", "Return STRICT JSON ONLY: a single object with exactly the OUTPUT fields. No prose, no markdown fences.")
	return strings.TrimSpace(buf.String()) + "\n"
}

func formatFields(fields []Field) string {
	var buf strings.Builder
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		typ := f.Type
		if len(f.Enum) > 0 {
			typ = strings.Join(f.Enum, "|")
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, typ, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, typ, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatToolSpecs(tools []ToolSpec) string {
	if len(tools) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, t := range tools {
		fmt.Fprintf(&buf, "- %s: %s\n", t.Name, t.Description)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
