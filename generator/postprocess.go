package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// EntriesSchema is the only accepted shape of a model response.
const EntriesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "frances": {"type": "string"},
      "pronunciacion": {"type": "string"},
      "espanol": {"type": "string"}
    },
    "required": ["frances", "pronunciacion", "espanol"],
    "additionalProperties": false
  }
}`

var entriesSchema = mustSchema(EntriesSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// ParseEntries turns a raw completion into entries. Anything that is not a
// well-formed entry array is a KindUnknown failure; nothing is salvaged.
func ParseEntries(raw string) ([]Entry, error) {
	payload := ExtractJSON(raw)
	if payload == "" {
		return nil, unknownError(errors.New("model returned empty response"))
	}

	result, err := entriesSchema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, unknownError(fmt.Errorf("response is not valid json: %w", err))
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, unknownError(fmt.Errorf("response failed schema validation: %s", strings.Join(msgs, "; ")))
	}

	entries := []Entry{}
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, unknownError(fmt.Errorf("decode entries: %w", err))
	}
	return entries, nil
}

// ExtractJSON returns the JSON body of a completion. Models often wrap it in a
// Markdown code fence; the first fenced block wins. Without a well-formed
// fence any stray fence markers are dropped.
func ExtractJSON(raw string) string {
	src := []byte(strings.TrimSpace(raw))
	if body, ok := firstFencedBlock(src); ok {
		return strings.TrimSpace(body)
	}
	s := strings.ReplaceAll(string(src), "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func firstFencedBlock(src []byte) (string, bool) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var (
		buf   bytes.Buffer
		found bool
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		found = true
		return ast.WalkStop, nil
	})
	return buf.String(), found
}
