// Package frontmatter reads and edits the YAML frontmatter block that
// daily and weekly notes carry for habit and mood tracking.
package frontmatter

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aaqilk/forge/internal/atomicfile"
	"github.com/aaqilk/forge/internal/dates"
)

// FieldType is the value type a tracked field accepts.
type FieldType int

const (
	Int FieldType = iota
	Float
	Bool
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "bool"
	}
}

// Field describes one tracked frontmatter field and the range its values
// must fall in. Bool fields ignore Min/Max.
type Field struct {
	Name    string
	Type    FieldType
	Min     float64
	Max     float64
	Section string
}

// DailyFields are the tracked fields of a daily note, in display order.
var DailyFields = []Field{
	{Name: "book", Type: Float, Min: 0, Max: 24, Section: "Tracking"},
	{Name: "learn_blender", Type: Float, Min: 0, Max: 24, Section: "Tracking"},
	{Name: "learn_python", Type: Float, Min: 0, Max: 24, Section: "Tracking"},
	{Name: "learn_ahk", Type: Float, Min: 0, Max: 24, Section: "Tracking"},
	{Name: "morning_mood", Type: Int, Min: 0, Max: 10, Section: "Mood"},
	{Name: "evening_mood", Type: Int, Min: 0, Max: 10, Section: "Mood"},
	{Name: "MAD", Type: Int, Min: 0, Max: 4, Section: "Metrics"},
	{Name: "PAD", Type: Int, Min: 0, Max: 10, Section: "Metrics"},
	{Name: "fajr_sunnah", Type: Bool, Section: "Spiritual"},
	{Name: "prayers", Type: Int, Min: 0, Max: 5, Section: "Spiritual"},
}

// WeeklyFields are the tracked fields of a weekly note, in display order.
var WeeklyFields = []Field{
	{Name: "weekly_overview", Type: Float, Min: 0, Max: 168, Section: "Overview"},
	{Name: "overall_mood", Type: Float, Min: 0, Max: 10, Section: "Mood"},
	{Name: "reading", Type: Float, Min: 0, Max: 168, Section: "Tracking"},
	{Name: "learn_blender", Type: Float, Min: 0, Max: 168, Section: "Tracking"},
	{Name: "learn_python", Type: Float, Min: 0, Max: 168, Section: "Tracking"},
	{Name: "learn_ahk", Type: Float, Min: 0, Max: 168, Section: "Tracking"},
	{Name: "MAD", Type: Int, Min: 0, Max: 28, Section: "Metrics"},
	{Name: "PAD", Type: Int, Min: 0, Max: 70, Section: "Metrics"},
	{Name: "fajr_sunnah_total", Type: Int, Min: 0, Max: 7, Section: "Spiritual"},
	{Name: "prayers", Type: Int, Min: 0, Max: 35, Section: "Spiritual"},
}

// Schema returns the tracked fields for a note kind.
func Schema(kind dates.Kind) []Field {
	if kind == dates.Week {
		return WeeklyFields
	}
	return DailyFields
}

// Lookup finds a tracked field by name. Fields outside the schema report
// ok=false; they are still storable, just not validated.
func Lookup(kind dates.Kind, name string) (Field, bool) {
	for _, f := range Schema(kind) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Section is a named group of tracked fields.
type Section struct {
	Name   string
	Fields []Field
}

// Sections groups the schema by section, preserving field order and the
// order in which sections first appear.
func Sections(kind dates.Kind) []Section {
	var sections []Section
	index := make(map[string]int)
	for _, f := range Schema(kind) {
		i, ok := index[f.Section]
		if !ok {
			i = len(sections)
			index[f.Section] = i
			sections = append(sections, Section{Name: f.Section})
		}
		sections[i].Fields = append(sections[i].Fields, f)
	}
	return sections
}

// ParseValue parses and validates a raw value for a tracked field.
func ParseValue(f Field, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch f.Type {
	case Int:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}
		if float64(n) < f.Min || float64(n) > f.Max {
			return nil, fmt.Errorf("%s must be between %s and %s", f.Name, formatBound(f.Min), formatBound(f.Max))
		}
		return n, nil
	case Float:
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Name)
		}
		if v < f.Min || v > f.Max {
			return nil, fmt.Errorf("%s must be between %s and %s", f.Name, formatBound(f.Min), formatBound(f.Max))
		}
		return v, nil
	default:
		switch strings.ToLower(trimmed) {
		case "true", "yes", "y":
			return true, nil
		case "false", "no", "n":
			return false, nil
		}
		return nil, fmt.Errorf("%s must be true or false", f.Name)
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LooseValue types a raw value for a field outside the schema: integers,
// floats and booleans keep their natural YAML type, everything else
// stays a string.
func LooseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	if trimmed == "true" || trimmed == "false" {
		return trimmed == "true"
	}
	return raw
}

// blockBounds returns the line index of the closing delimiter. It only
// detects a block when the first line is '---'; an unclosed block
// reports end=-1.
func blockBounds(lines []string) (end int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return -1, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i, true
		}
	}
	return -1, true
}

// Parse splits note content into its frontmatter fields and body. Notes
// without a block report ok=false with the whole content as body.
func Parse(content string) (fields map[string]any, body string, ok bool) {
	lines := strings.Split(content, "\n")
	end, present := blockBounds(lines)
	if !present || end == -1 {
		return nil, content, false
	}

	var parsed map[string]any
	block := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(block), &parsed); err != nil {
		return nil, content, false
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	return parsed, strings.Join(lines[end+1:], "\n"), true
}

// Update sets fields in the note's frontmatter block and returns the new
// content. Existing entries keep their order and comments; new fields
// are appended to the block. A note without a block gains one above the
// body.
func Update(content string, updates map[string]any) (string, error) {
	lines := strings.Split(content, "\n")
	end, present := blockBounds(lines)

	var doc yaml.Node
	if present && end != -1 {
		block := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
			return "", fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}

	mapping := documentMapping(&doc)
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := setMappingValue(mapping, name, updates[name]); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return "", fmt.Errorf("failed to serialize frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to serialize frontmatter: %w", err)
	}

	suffix := ""
	if present && end != -1 {
		if end+1 < len(lines) {
			suffix = "\n" + strings.Join(lines[end+1:], "\n")
		}
	} else if content != "" {
		suffix = "\n" + content
	}
	return "---\n" + buf.String() + "---" + suffix, nil
}

// UpdateFile applies Update to a note on disk, writing the result
// atomically.
func UpdateFile(path string, updates map[string]any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	updated, err := Update(string(content), updates)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path, []byte(updated), 0)
}

// documentMapping returns the document's root mapping node, creating an
// empty one for empty or missing documents.
func documentMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		return doc.Content[0]
	}
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func setMappingValue(mapping *yaml.Node, name string, value any) error {
	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("failed to encode field %s: %w", name, err)
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == name {
			// Keep the key node so its comments survive.
			mapping.Content[i+1] = &valueNode
			return nil
		}
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	mapping.Content = append(mapping.Content, keyNode, &valueNode)
	return nil
}
