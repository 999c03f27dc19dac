package model

import "fmt"

// Kind is the exercise type of an activity. The set is closed.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindFillBlank      Kind = "fill_blank"
	KindMatching       Kind = "matching"
	KindTranslation    Kind = "translation"
	KindTrueFalse      Kind = "true_false"
	KindWordOrder      Kind = "word_order"
	KindListenRepeat   Kind = "listen_repeat"
)

var kinds = []Kind{
	KindMultipleChoice,
	KindFillBlank,
	KindMatching,
	KindTranslation,
	KindTrueFalse,
	KindWordOrder,
	KindListenRepeat,
}

var kindTitles = map[Kind]string{
	KindMultipleChoice: "Opción Múltiple",
	KindFillBlank:      "Completar Espacios",
	KindMatching:       "Emparejar",
	KindTranslation:    "Traducción",
	KindTrueFalse:      "Verdadero/Falso",
	KindWordOrder:      "Ordenar Palabras",
	KindListenRepeat:   "Escuchar y Repetir",
}

// Kinds returns every activity kind in display order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := kindTitles[k]; !ok {
		return "", fmt.Errorf("unknown activity kind %q", s)
	}
	return k, nil
}

func (k Kind) Valid() bool {
	_, ok := kindTitles[k]
	return ok
}

func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}
