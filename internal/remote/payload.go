package remote

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/wordgrid/internal/grid"
	"github.com/vk/wordgrid/internal/predicate"
	"github.com/vk/wordgrid/internal/session"
)

// Event names exchanged with clients.
const (
	EventConfigure = "configure"
	EventRefresh   = "refresh"
	EventCopy      = "copy"
	EventResult    = "result"
	EventCopied    = "copied"
)

// ConfigurePayload is sent by a client to change its session. Fields maps
// field names or aliases to raw values; an empty value clears the field.
// Profile, when set, is applied before Fields.
type ConfigurePayload struct {
	Fields  map[string]any `json:"fields"`
	Width   int            `json:"width"`
	Profile string         `json:"profile"`
}

// ResultPayload is emitted after every evaluation.
type ResultPayload struct {
	Session    string   `json:"session"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
	Words      []string `json:"words"`
	Predicates []string `json:"predicates"`
	Notice     string   `json:"notice,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// CopiedPayload carries the displayed grid back to the client for its own
// clipboard.
type CopiedPayload struct {
	Session string `json:"session"`
	Text    string `json:"text"`
}

func newResultPayload(id string, res session.Result, err error) ResultPayload {
	p := ResultPayload{
		Session:    id,
		Text:       res.Text,
		Lines:      grid.Lines(res.Text),
		Words:      res.Words,
		Predicates: predicate.Strings(res.Predicates),
		Notice:     res.Notice,
	}
	if err != nil {
		p.Error = err.Error()
	}
	return p
}

// decodeConfigure reads the first event argument, which arrives as decoded
// JSON, into a ConfigurePayload.
func decodeConfigure(args []any) (ConfigurePayload, error) {
	var p ConfigurePayload
	if len(args) == 0 || args[0] == nil {
		return p, nil
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return p, fmt.Errorf("invalid configure payload: %w", err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("invalid configure payload: %w", err)
	}
	return p, nil
}

// fieldString renders a JSON value the way a user would type it.
func fieldString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "on"
		}
		return "off"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fieldString(item))
		}
		return strings.Join(items, " ")
	}
	return fmt.Sprint(v)
}
