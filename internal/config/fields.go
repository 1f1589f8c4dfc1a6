package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names one editable Configuration value.
type Field string

const (
	FieldStartsWith Field = "startswith"
	FieldEndsWith   Field = "endswith"
	FieldMinLength  Field = "minlen"
	FieldMaxLength  Field = "maxlen"
	FieldContains   Field = "contains"
	FieldMultiple   Field = "multiple"
	FieldDouble     Field = "double"
	FieldNotContain Field = "not_contain"
	FieldReversed   Field = "reversed"
	FieldWordList   Field = "word_list_path"
)

// Fields lists every editable field in display order.
var Fields = []Field{
	FieldStartsWith,
	FieldEndsWith,
	FieldMinLength,
	FieldMaxLength,
	FieldContains,
	FieldMultiple,
	FieldDouble,
	FieldNotContain,
	FieldReversed,
	FieldWordList,
}

var fieldAliases = map[string]Field{
	"start":     FieldStartsWith,
	"s":         FieldStartsWith,
	"end":       FieldEndsWith,
	"e":         FieldEndsWith,
	"min":       FieldMinLength,
	"max":       FieldMaxLength,
	"m":         FieldMaxLength,
	"c":         FieldContains,
	"cm":        FieldMultiple,
	"d":         FieldDouble,
	"exclude":   FieldNotContain,
	"x":         FieldNotContain,
	"reverse":   FieldReversed,
	"r":         FieldReversed,
	"wordlist":  FieldWordList,
	"word_list": FieldWordList,
}

// ParseField resolves a canonical field name or one of its short aliases.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	f, ok := fieldAliases[name]
	return f, ok
}

// NumericFieldError reports a length field that did not parse as a
// non-negative integer. The field has already been reset to 0 when it is
// returned, so callers may treat it as a warning.
type NumericFieldError struct {
	Field Field
	Value string
}

func (e *NumericFieldError) Error() string {
	return fmt.Sprintf("%s: %q is not a non-negative integer, treating it as unset", e.Field, e.Value)
}

// SetField parses raw text into the named field. An empty value clears the
// field. List fields accept whitespace or comma separated items.
func (c *Configuration) SetField(field Field, raw string) error {
	raw = strings.TrimSpace(raw)
	switch field {
	case FieldStartsWith:
		c.StartsWith = raw
	case FieldEndsWith:
		c.EndsWith = raw
	case FieldMultiple:
		c.Multiple = raw
	case FieldWordList:
		c.WordListPath = raw
	case FieldMinLength:
		n, err := parseLength(field, raw)
		c.MinLength = n
		return err
	case FieldMaxLength:
		n, err := parseLength(field, raw)
		c.MaxLength = n
		return err
	case FieldContains:
		c.Contains = SplitList(raw)
	case FieldNotContain:
		c.NotContain = SplitList(raw)
	case FieldDouble:
		b, err := parseSwitch(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		c.Double = b
	case FieldReversed:
		b, err := parseSwitch(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		c.Reversed = b
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Value renders the named field the way SetField accepts it.
func (c Configuration) Value(field Field) string {
	switch field {
	case FieldStartsWith:
		return c.StartsWith
	case FieldEndsWith:
		return c.EndsWith
	case FieldMultiple:
		return c.Multiple
	case FieldWordList:
		return c.WordListPath
	case FieldMinLength:
		return lengthString(c.MinLength)
	case FieldMaxLength:
		return lengthString(c.MaxLength)
	case FieldContains:
		return strings.Join(c.Contains, " ")
	case FieldNotContain:
		return strings.Join(c.NotContain, " ")
	case FieldDouble:
		return switchString(c.Double)
	case FieldReversed:
		return switchString(c.Reversed)
	}
	return ""
}

// SplitList splits user input on commas and whitespace, dropping empty items.
func SplitList(raw string) []string {
	items := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(items) == 0 {
		return nil
	}
	return items
}

func parseLength(field Field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &NumericFieldError{Field: field, Value: raw}
	}
	return n, nil
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "off", "no", "false", "0":
		return false, nil
	case "on", "yes", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", raw)
}

func lengthString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func switchString(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
