package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatSceneTable writes one row per scene. The active scene is marked with '*'.
func (f *Formatter) FormatSceneTable(scenes []SceneDTO) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "\tNAME\tITEMS\tVISIBLE\tID")
	for _, sc := range scenes {
		marker := ""
		if sc.Active {
			marker = "*"
		}
		visible := 0
		for _, it := range sc.Items {
			if !it.Hidden {
				visible++
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", marker, sc.Name, len(sc.Items), visible, sc.ID)
	}
	return tw.Flush()
}

// FormatSceneNames writes scene names one per line, the active one marked.
// The output is stable across reloads, unlike scene ids.
func (f *Formatter) FormatSceneNames(scenes []SceneDTO) error {
	_, err := io.WriteString(f.writer, SceneListing(scenes))
	return err
}

// SceneListing renders scene names one per line with the active marker.
func SceneListing(scenes []SceneDTO) string {
	var out []byte
	for _, sc := range scenes {
		if sc.Active {
			out = append(out, "* "...)
		} else {
			out = append(out, "  "...)
		}
		out = append(out, sc.Name...)
		out = append(out, '\n')
	}
	return string(out)
}
