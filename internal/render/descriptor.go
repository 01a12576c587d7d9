// Package render turns file records into cards and lays them out.
//
// Nothing in here talks to the network or to a UI toolkit event loop: the
// terminal UI, the desktop UI and the CLI all feed records in and read cards
// or strings out.
package render

import (
	"strings"

	"mediadeck/pkg/types"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Descriptor is everything a frontend needs to present a file type
type Descriptor struct {
	Type  types.FileType
	Label string
	Icon  string
}

var icons = map[types.FileType]string{
	types.TypeImage:        "🖼",
	types.TypeVideo:        "🎬",
	types.TypeJSON:         "{}",
	types.TypeText:         "📝",
	types.TypeDocument:     "📄",
	types.TypePDF:          "📕",
	types.TypeSpreadsheet:  "📊",
	types.TypePresentation: "📽",
	types.TypeFile:         "📁",
}

var upper = cases.Upper(language.Und)

// mimeRule maps a mime predicate to a type. Order matters: first match wins.
type mimeRule struct {
	match func(mime string) bool
	typ   types.FileType
}

func prefix(p string) func(string) bool {
	return func(m string) bool { return strings.HasPrefix(m, p) }
}

func exact(s string) func(string) bool {
	return func(m string) bool { return m == s }
}

func contains(subs ...string) func(string) bool {
	return func(m string) bool {
		for _, s := range subs {
			if strings.Contains(m, s) {
				return true
			}
		}
		return false
	}
}

var mimeRules = []mimeRule{
	{prefix("image/"), types.TypeImage},
	{prefix("video/"), types.TypeVideo},
	{exact("application/json"), types.TypeJSON},
	{prefix("text/"), types.TypeText},
	{contains("pdf"), types.TypePDF},
	{contains("word"), types.TypeDocument},
	{contains("excel", "spreadsheet"), types.TypeSpreadsheet},
	{contains("powerpoint", "presentation"), types.TypePresentation},
}

// Classify picks the file type. A known explicit type wins; otherwise the
// mime type is matched against the fixed rule order.
func Classify(explicit types.FileType, mime string) types.FileType {
	if explicit != "" && explicit.Known() {
		return explicit
	}
	m := strings.ToLower(strings.TrimSpace(mime))
	for _, rule := range mimeRules {
		if rule.match(m) {
			return rule.typ
		}
	}
	return types.TypeFile
}

// Describe returns the presentation descriptor for t
func Describe(t types.FileType) Descriptor {
	if !t.Known() {
		t = types.TypeFile
	}
	return Descriptor{
		Type:  t,
		Label: upper.String(string(t)),
		Icon:  icons[t],
	}
}

// DescribeRecord classifies and describes a record in one step
func DescribeRecord(r types.FileRecord) Descriptor {
	return Describe(Classify(r.Type, r.MimeType))
}
