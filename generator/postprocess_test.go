package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pommeJSON = `[{"frances":"Je mange une pomme","pronunciacion":"jeu mãnzh ewn pom","espanol":"Como una manzana"}]`

var pommeEntry = Entry{
	SourcePhrase:  "Je mange une pomme",
	Pronunciation: "jeu mãnzh ewn pom",
	Translation:   "Como una manzana",
}

func TestParseEntries_PlainJSON(t *testing.T) {
	entries, err := ParseEntries(pommeJSON)
	require.NoError(t, err)
	assert.Equal(t, []Entry{pommeEntry}, entries)
}

func TestParseEntries_FencedSameAsPlain(t *testing.T) {
	plain, err := ParseEntries(pommeJSON)
	require.NoError(t, err)

	cases := map[string]string{
		"json fence":       "```json\n" + pommeJSON + "\n```",
		"bare fence":       "```\n" + pommeJSON + "\n```",
		"surrounding text": "Aquí tienes:\n\n```json\n" + pommeJSON + "\n```\n\n¡Suerte!",
		"unclosed fence":   "```json\n" + pommeJSON,
		"inline markers":   "```json" + pommeJSON + "```",
		"leading spaces":   "   \n```json\n" + pommeJSON + "\n```\n   ",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			entries, err := ParseEntries(raw)
			require.NoError(t, err)
			assert.Equal(t, plain, entries)
		})
	}
}

func TestParseEntries_EmptyArray(t *testing.T) {
	entries, err := ParseEntries("[]")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestParseEntries_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"only fences":    "```json\n```",
		"not json":       "Lo siento, no puedo ayudar con eso.",
		"truncated":      `[{"frances":"Bonjour"`,
		"object":         `{"frances":"Bonjour","pronunciacion":"bonyur","espanol":"Hola"}`,
		"missing field":  `[{"frances":"Bonjour","espanol":"Hola"}]`,
		"extra field":    `[{"frances":"Bonjour","pronunciacion":"bonyur","espanol":"Hola","ingles":"Hello"}]`,
		"wrong type":     `[{"frances":"Bonjour","pronunciacion":1,"espanol":"Hola"}]`,
		"array of text":  `["Bonjour"]`,
		"wrapped object": `{"entries":[{"frances":"Bonjour","pronunciacion":"bonyur","espanol":"Hola"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			entries, err := ParseEntries(raw)
			require.Error(t, err)
			assert.Nil(t, entries)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, KindUnknown, genErr.Kind)
			assert.Empty(t, genErr.Message)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `[1]`, ExtractJSON("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, ExtractJSON("  [1]  "))
	assert.Equal(t, "[1,\n2]", ExtractJSON("intro\n```\n[1,\n2]\n```\n```\n[3]\n```"))
}
