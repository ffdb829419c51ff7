package command

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by -o.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

var outputs = []string{OutputJSON, OutputYAML, OutputText}

func write(w io.Writer, output string, a any, pretty bool) error {
	switch output {
	case OutputJSON, "":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(a)
	}

	// Go through JSON so that YAML and text use the same keys.
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}

	var obj any
	if err = json.Unmarshal(b, &obj); err != nil {
		return err
	}

	switch output {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(obj); err != nil {
			return err
		}
		return enc.Close()
	case OutputText:
		return writeText(w, obj, 0)
	}

	return fmt.Errorf("unknown output %q, expected one of %s", output, strings.Join(outputs, ", "))
}

var (
	headingColor = color.New(color.Bold, color.FgCyan)
	keyColor     = color.New(color.FgHiBlack)
	trueColor    = color.New(color.FgGreen)
	falseColor   = color.New(color.FgYellow)
)

func writeText(w io.Writer, obj any, depth int) error {
	m, ok := obj.(map[string]any)
	if !ok {
		_, err := fmt.Fprintln(w, textValue(obj))
		return err
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	indent := strings.Repeat("  ", depth)

	for _, key := range keys {
		if nested, ok := m[key].(map[string]any); ok {
			if depth == 0 {
				if _, err := headingColor.Fprintln(w, key); err != nil {
					return err
				}
			} else if _, err := fmt.Fprintf(w, "%s%s\n", indent, keyColor.Sprint(key+":")); err != nil {
				return err
			}

			if len(nested) == 0 {
				if _, err := fmt.Fprintf(w, "%s  %s\n", indent, keyColor.Sprint("(none)")); err != nil {
					return err
				}
				continue
			}

			if err := writeText(w, nested, depth+1); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s%s %s\n", indent, keyColor.Sprint(key+":"), textValue(m[key])); err != nil {
			return err
		}
	}

	return nil
}

func textValue(a any) string {
	switch v := a.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return trueColor.Sprint(v)
		}
		return falseColor.Sprint(v)
	case []any:
		s := make([]string, len(v))
		for i, e := range v {
			s[i] = textValue(e)
		}
		return strings.Join(s, ", ")
	}

	return fmt.Sprint(a)
}
