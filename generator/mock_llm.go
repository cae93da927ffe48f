package generator

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

var topicRe = regexp.MustCompile(`Tema: '([^']*)'`)

// MockLLM is an offline stand-in for local debugging; it never calls a model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, _ string, prompt Prompt) (string, error) {
	topic := "ejemplo"
	if match := topicRe.FindStringSubmatch(prompt.User); len(match) == 2 && match[1] != "" {
		topic = match[1]
	}
	body, err := json.Marshal([]Entry{
		{SourcePhrase: "le " + topic, Pronunciation: "le " + topic, Translation: "el " + topic},
		{SourcePhrase: "J'aime " + topic, Pronunciation: "yem " + topic, Translation: "Me gusta " + topic},
	})
	if err != nil {
		return "", err
	}
	// Wrap in a fence the way real models often do.
	var sb strings.Builder
	sb.WriteString("```json\n")
	sb.Write(body)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
