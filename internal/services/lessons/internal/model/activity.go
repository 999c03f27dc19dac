package model

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
)

const DefaultPoints = 10

type Feedback struct {
	Correct     string `json:"correcto,omitempty"`
	Incorrect   string `json:"incorrecto,omitempty"`
	Explanation string `json:"explicacion,omitempty"`
}

func (f Feedback) IsZero() bool {
	return f == Feedback{}
}

// Activity is a single exercise of a lesson. The kind is carried by Payload.
type Activity struct {
	ID           int64
	LessonID     int64
	Prompt       string
	Instructions string
	Hint         string
	Points       int
	Order        int
	// TimeLimit is in seconds, zero means no limit.
	TimeLimit int
	MediaID   *int64
	Feedback  Feedback
	Payload   Payload
}

func (a Activity) Kind() Kind {
	if a.Payload == nil {
		return ""
	}
	return a.Payload.Kind()
}

// Validate checks the prompt and that the answer has the shape the kind needs.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Prompt) == "" {
		return serr.Validation("la pregunta es obligatoria")
	}
	if a.Payload == nil {
		return serr.Validation("la actividad no tiene tipo")
	}
	if a.Points < 0 {
		return serr.Validation("los puntos no pueden ser negativos")
	}
	return a.Payload.validate()
}

// Payload is implemented by the per-kind answer types of this package only.
type Payload interface {
	Kind() Kind
	validate() error
}

type MultipleChoice struct {
	Options []string
	Answer  string
}

func (MultipleChoice) Kind() Kind { return KindMultipleChoice }

func (p MultipleChoice) validate() error {
	options := nonEmpty(p.Options)
	if len(options) < 2 {
		return serr.Validation("debes agregar al menos 2 opciones")
	}
	answer := strings.TrimSpace(p.Answer)
	if answer == "" {
		return serr.Validation("selecciona la respuesta correcta")
	}
	if !slices.Contains(options, answer) {
		return serr.Validation("la respuesta correcta debe ser una de las opciones")
	}
	return nil
}

// FillBlank is a sentence with a gap marked by "___".
type FillBlank struct {
	Sentence string
	Answers  []string
}

func (FillBlank) Kind() Kind { return KindFillBlank }

func (p FillBlank) validate() error {
	if len(nonEmpty(p.Answers)) == 0 {
		return serr.Validation("agrega al menos una respuesta aceptada")
	}
	return nil
}

type Pair struct {
	ID    string `json:"id"`
	Left  string `json:"izquierda"`
	Right string `json:"derecha"`
	Hint  string `json:"pista,omitempty"`
	Group string `json:"grupo,omitempty"`
}

type Matching struct {
	Pairs          []Pair
	ShuffleOptions bool
	AllowDrag      bool
	GroupMode      bool
}

func (Matching) Kind() Kind { return KindMatching }

// Groups returns the distinct non-empty group labels in first-seen order.
func (p Matching) Groups() []string {
	return DistinctGroups(p.Pairs)
}

func DistinctGroups(pairs []Pair) []string {
	var groups []string
	for _, pair := range pairs {
		g := strings.TrimSpace(pair.Group)
		if g != "" && !slices.Contains(groups, g) {
			groups = append(groups, g)
		}
	}
	return groups
}

func (p Matching) validate() error {
	if len(p.Pairs) < 2 {
		return serr.Validation("debes agregar al menos 2 pares")
	}
	for _, pair := range p.Pairs {
		if strings.TrimSpace(pair.Left) == "" || strings.TrimSpace(pair.Right) == "" {
			return serr.Validation("completa ambos campos del par")
		}
	}
	if p.GroupMode && len(p.Groups()) < 2 {
		return serr.Validation("en modo grupos, debes tener al menos 2 grupos diferentes")
	}
	return nil
}

type Translation struct {
	Source  string
	Answers []string
}

func (Translation) Kind() Kind { return KindTranslation }

func (p Translation) validate() error {
	if len(nonEmpty(p.Answers)) == 0 {
		return serr.Validation("agrega al menos una traducción aceptada")
	}
	return nil
}

type TrueFalse struct {
	Answer bool
}

func (TrueFalse) Kind() Kind { return KindTrueFalse }

func (TrueFalse) validate() error { return nil }

// WordOrder holds the shuffled word bag and the expected sentence order.
type WordOrder struct {
	Words        []string
	CorrectOrder []string
}

func (WordOrder) Kind() Kind { return KindWordOrder }

func (p WordOrder) validate() error {
	if len(p.CorrectOrder) < 2 {
		return serr.Validation("la oración debe tener al menos 2 palabras")
	}
	if len(p.Words) != len(p.CorrectOrder) {
		return serr.Validation("las palabras no coinciden con el orden correcto")
	}

	bag := slices.Clone(p.Words)
	order := slices.Clone(p.CorrectOrder)
	slices.Sort(bag)
	slices.Sort(order)
	if !slices.Equal(bag, order) {
		return serr.Validation("las palabras no coinciden con el orden correcto")
	}
	return nil
}

type ListenRepeat struct {
	Phrase string
}

func (ListenRepeat) Kind() Kind { return KindListenRepeat }

func (p ListenRepeat) validate() error {
	if strings.TrimSpace(p.Phrase) == "" {
		return serr.Validation("la frase es obligatoria")
	}
	return nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SortByOrder sorts activities by display order, keeping the backend order
// for ties.
func SortByOrder(activities []Activity) {
	slices.SortStableFunc(activities, func(a, b Activity) int {
		return a.Order - b.Order
	})
}
