package frontend

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// DefaultPlaceholder is replaced verbatim by the JSON payload when present
// in the entry document, e.g. `<script>window.__env = __PUBLIC_ENV__;</script>`.
const DefaultPlaceholder = "__PUBLIC_ENV__"

// DefaultPublicKeys are the variables the browser bundle reads at runtime.
var DefaultPublicKeys = []string{
	"VITE_API_PLACES_ENDPOINT",
	"VITE_API_BOOKINGS_ENDPOINT",
	"VITE_SUPABASE_URL",
	"VITE_SUPABASE_ANON_KEY",
}

var (
	scriptCloseRe = regexp.MustCompile(`(?i)</script`)
	headCloseRe   = regexp.MustCompile(`(?i)</head\s*>`)
	bodyOpenRe    = regexp.MustCompile(`(?i)<body[\s>/]`)
)

// PublicEnv is the ordered whitelist of variables exposed to the browser.
type PublicEnv struct {
	keys []string
}

// NewPublicEnv builds a whitelist, dropping blanks and duplicates while
// keeping the first occurrence order.
func NewPublicEnv(keys []string) PublicEnv {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return PublicEnv{keys: out}
}

// Keys returns a copy of the whitelist.
func (p PublicEnv) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Payload renders the whitelisted variables as a JSON object in whitelist
// order. Unset keys are present with an empty string. lookup is usually
// os.LookupEnv and is consulted on every call.
func (p PublicEnv) Payload(lookup func(string) (string, bool)) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, _ := lookup(k)
		writeJSONString(&buf, k)
		buf.WriteByte(':')
		writeJSONString(&buf, v)
	}
	buf.WriteByte('}')
	return escapeScriptClose(buf.String())
}

func writeJSONString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}

// escapeScriptClose turns every `</script` into `<\/script`, keeping the
// original letter case. `\/` is a valid JSON escape for `/`.
func escapeScriptClose(s string) string {
	return scriptCloseRe.ReplaceAllStringFunc(s, func(m string) string {
		return `<\` + m[1:]
	})
}

// Script returns the JavaScript statement that publishes payload.
func Script(payload string) string {
	return "window.__env = " + payload + ";"
}

// ScriptTag wraps Script in an inline script element.
func ScriptTag(payload string) string {
	return "<script>" + Script(payload) + "</script>"
}

// Placement records where Inject put the payload.
type Placement int

const (
	// PlacementPlaceholder means the placeholder token was replaced.
	PlacementPlaceholder Placement = iota
	// PlacementHead means a script tag was inserted before </head>.
	PlacementHead
	// PlacementBody means the document has a <body> but no </head>; the
	// script tag was prepended.
	PlacementBody
	// PlacementPrepend means no anchor was found; the script tag was prepended.
	PlacementPrepend
)

func (p Placement) String() string {
	switch p {
	case PlacementPlaceholder:
		return "placeholder"
	case PlacementHead:
		return "head"
	case PlacementBody:
		return "body"
	default:
		return "prepend"
	}
}

// Inject places payload into the HTML document. Branches are tried in
// order: placeholder, closing head tag, opening body tag, bare prepend.
func Inject(html, payload, placeholder string) (string, Placement) {
	if placeholder != "" && strings.Contains(html, placeholder) {
		return strings.ReplaceAll(html, placeholder, payload), PlacementPlaceholder
	}
	tag := ScriptTag(payload)
	if loc := headCloseRe.FindStringIndex(html); loc != nil {
		return html[:loc[0]] + tag + html[loc[0]:], PlacementHead
	}
	if bodyOpenRe.MatchString(html) {
		return tag + html, PlacementBody
	}
	return tag + html, PlacementPrepend
}
