// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format is an output format name.
type Format string

const (
	// FormatTable renders a bordered table.
	FormatTable Format = "table"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// Align is a column alignment for table output.
type Align int

// Column alignments.
const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Formatter writes data in one format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements Formatter.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter returns the formatter for format, defaulting to a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter writes JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(data)
}

// YAMLFormatter writes YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Data is pre-shaped table content.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// TableFormatter writes tables. Values that are not Data are shaped by
// reflection: a slice of structs becomes one row per element and a single
// struct becomes a property/value listing. Anything else falls back to JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if d, ok := data.(Data); ok {
		return f.render(w, d)
	}
	if d := toData(data); d != nil {
		return f.render(w, *d)
	}
	return (&JSONFormatter{Indent: "  "}).Format(w, data)
}

func (f *TableFormatter) render(w io.Writer, data Data) error {
	cfg := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignCenter:
				align[i] = tw.AlignCenter
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: align}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(data.Headers) > 0 {
		table.Header(toAny(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := table.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// DetectFormat returns explicit when set, else a table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates a format name. The empty string means auto-detect.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}

func toData(data any) *Data {
	v := reflect.ValueOf(data)
	switch {
	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		t := v.Index(0).Type()
		d := &Data{}
		for i := 0; i < t.NumField(); i++ {
			d.Headers = append(d.Headers, header(t.Field(i)))
		}
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			row := make([]string, elem.NumField())
			for j := range row {
				row[j] = fmt.Sprintf("%v", elem.Field(j).Interface())
			}
			d.Rows = append(d.Rows, row)
		}
		return d
	case v.Kind() == reflect.Struct:
		t := v.Type()
		d := &Data{Headers: []string{"Property", "Value"}}
		for i := 0; i < t.NumField(); i++ {
			d.Rows = append(d.Rows, []string{header(t.Field(i)), fmt.Sprintf("%v", v.Field(i).Interface())})
		}
		return d
	}
	return nil
}

// header titles a field from its json tag, e.g. member_id becomes Member Id.
func header(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if i := strings.Index(tag, ","); i > 0 {
		tag = tag[:i]
	}
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}
