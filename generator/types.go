package generator

// Level selects which kind of content the model is asked to produce.
type Level string

const (
	LevelTexts   Level = "Textos"
	LevelPhrases Level = "Frases"
	LevelWords   Level = "Palabras"
)

// Entry is one generated unit: French text, approximate pronunciation for
// Spanish speakers and the Spanish translation.
type Entry struct {
	SourcePhrase  string `json:"frances"`
	Pronunciation string `json:"pronunciacion"`
	Translation   string `json:"espanol"`
}
