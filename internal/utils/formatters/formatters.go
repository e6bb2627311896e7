// Package formatters provides name normalization, timestamp formatting, and
// JSON pretty-printing helpers.
package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/fatih/color"
)

// backupTimestampLayout is the second-granularity timestamp embedded in backup
// filenames; together with browser and profile it makes names collision-free
// within a run.
const backupTimestampLayout = "20060102_150405"

// NormalizeProfileName converts a profile directory name into its filename
// form: lowercased, spaces replaced by underscores.
func NormalizeProfileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// BackupTimestamp renders ts in the backup filename layout.
func BackupTimestamp(ts time.Time) string {
	return ts.Format(backupTimestampLayout)
}

// marshalIndent is used by FormatAsJson; tests may override to simulate marshal failure.
var marshalIndent = json.MarshalIndent

// formatterMarshal is used by PrintPrettyJson; tests may override to simulate formatter marshal failure.
var formatterMarshal = func(f *colorjson.Formatter, obj interface{}) ([]byte, error) { return f.Marshal(obj) }

// FormatAsJson renders any value as a pretty-printed JSON string. If
// marshalling fails, it returns an error.
func FormatAsJson(v interface{}) (string, error) {
	jsonData, err := marshalIndent(v, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	return string(jsonData), nil
}

// PrintJson prints a given JSON-formatted string to the standard output.
func PrintJson(data string) {
	fmt.Println(data)
}

// PrintPrettyJson takes a JSON string, unmarshals it into an object, and prints
// it with pretty formatting. Optionally, alternate colors can be used for keys
// and strings if useAltColors is provided and set to true. Returns an error if
// JSON unmarshalling or formatting fails.
func PrintPrettyJson(data string, useAltColors ...bool) error {
	var obj interface{}

	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	f := colorjson.NewFormatter()
	f.Indent = 4

	if len(useAltColors) > 0 && useAltColors[0] {
		f.KeyColor = color.New(color.FgHiCyan)
		f.StringColor = color.New(color.FgHiMagenta)
	}

	s, err := formatterMarshal(f, obj)
	if err != nil {
		return fmt.Errorf("failed to marshal formatted JSON: %w", err)
	}

	fmt.Println(string(s))
	return nil
}
