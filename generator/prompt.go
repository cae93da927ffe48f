package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// Instruction returns the level-specific generation instruction. Unknown
// levels fall back to single words.
func Instruction(level Level) string {
	switch level {
	case LevelTexts:
		return "Genera párrafos cortos (3-4 oraciones) con continuidad y sentido."
	case LevelPhrases:
		return "Genera oraciones completas y útiles (7-15 palabras)."
	default:
		return "Genera palabras sueltas con su artículo."
	}
}

// BuildPrompt assembles the French-teacher prompt for a topic and level.
func BuildPrompt(topic string, level Level) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Profesor de francés. Tema: '%s'. Nivel: '%s'. %s\n", topic, level, Instruction(level)))
	sb.WriteString("Requisito: Incluye 'pronunciacion' aproximada para hispanohablantes.\n")
	sb.WriteString("Responde SOLO JSON válido:\n")
	sb.WriteString(`[ {"frances": "...", "pronunciacion": "...", "espanol": "..."} ]`)
	sb.WriteString("\n")

	return Prompt{User: sb.String()}
}
