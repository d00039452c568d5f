package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/snapshare/cli/pkg/config"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	return ParseFormat(config.GetString("output.format"))
}

// ParseFormat maps a format name to an OutputFormat, defaulting to text
func ParseFormat(format string) OutputFormat {
	switch format {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// Field is one labelled value of a record. Records keep field order.
type Field struct {
	Key   string
	Value interface{}
}

// Printer writes results in one output format
type Printer struct {
	w      io.Writer
	format OutputFormat
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, format OutputFormat) *Printer {
	return &Printer{w: w, format: format}
}

// Default is a printer on stdout in the configured format
func Default() *Printer {
	return NewPrinter(color.Output, GetOutputFormat())
}

// Format returns the printer's format
func (p *Printer) Format() OutputFormat {
	return p.format
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// JSON writes data as indented JSON
func (p *Printer) JSON(data interface{}) error {
	out, err := FormatAsPrettyJSON(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, out)
	return err
}

// Record writes a single object. JSON output encodes data itself; text and
// table output use fields.
func (p *Printer) Record(title string, data interface{}, fields []Field) error {
	switch p.format {
	case FormatJSON:
		return p.JSON(data)
	case FormatTable:
		rows := make([][]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, []string{f.Key, fmt.Sprintf("%v", f.Value)})
		}
		p.Table([]string{"Field", "Value"}, rows)
		return nil
	default:
		if title != "" {
			fmt.Fprintf(p.w, "%s:\n", title)
		}
		bold := color.New(color.Bold)
		for _, f := range fields {
			bold.Fprint(p.w, f.Key+": ")
			fmt.Fprintf(p.w, "%v\n", f.Value)
		}
		return nil
	}
}

// List writes a collection. JSON output encodes items, table output uses
// headers and rows, and text output prints each line of lines. An empty
// collection prints empty in text and table output.
func (p *Printer) List(items interface{}, headers []string, rows [][]string, lines []string, empty string) error {
	switch p.format {
	case FormatJSON:
		return p.JSON(items)
	case FormatTable:
		if len(rows) == 0 {
			fmt.Fprintln(p.w, empty)
			return nil
		}
		p.Table(headers, rows)
		return nil
	default:
		if len(lines) == 0 {
			fmt.Fprintln(p.w, empty)
			return nil
		}
		for _, l := range lines {
			fmt.Fprintln(p.w, l)
		}
		return nil
	}
}

// Table writes headers and rows aligned in columns
func (p *Printer) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	for i, h := range headers {
		bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprint(w, cell)
			if i < len(row)-1 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

// Success prints a success message
func (p *Printer) Success(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(p.w, msg+"\n", args...)
}

// Error prints an error message
func (p *Printer) Error(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(p.w, "Error: "+msg+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(p.w, msg+"\n", args...)
}

// Warning prints a warning message
func (p *Printer) Warning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(p.w, "Warning: "+msg+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	Default().Success(msg, args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	Default().Error(msg, args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	Default().Info(msg, args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	Default().Warning(msg, args...)
}

// FormatAsJSON converts data to a compact JSON string
func FormatAsJSON(data interface{}) (string, error) {
	out, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatAsPrettyJSON converts data to an indented JSON string
func FormatAsPrettyJSON(data interface{}) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
