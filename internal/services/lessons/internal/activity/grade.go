package activity

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

// Grade checks a typed response against the activity's answer.
//
// Multiple choice takes the option text or its 1-based number. Matching takes
// "left=right" entries separated by ";". Word order takes the words separated
// by spaces. True/false takes v, f, true, false, verdadero or falso. Text is
// compared ignoring case and repeated spaces.
func Grade(a model.Activity, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false, serr.Validation("escribe una respuesta")
	}

	switch p := a.Payload.(type) {
	case model.MultipleChoice:
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(p.Options) {
			input = p.Options[n-1]
		}
		return normalize(input) == normalize(p.Answer), nil
	case model.FillBlank:
		return matchesAny(input, p.Answers), nil
	case model.Translation:
		return matchesAny(input, p.Answers), nil
	case model.TrueFalse:
		v, err := parseBool(input)
		if err != nil {
			return false, err
		}
		return v == p.Answer, nil
	case model.WordOrder:
		return slices.EqualFunc(strings.Fields(input), p.CorrectOrder, func(a, b string) bool {
			return normalize(a) == normalize(b)
		}), nil
	case model.Matching:
		return gradeMatching(p, input)
	case model.ListenRepeat:
		return words(input) == words(p.Phrase), nil
	default:
		return false, serr.Validation("la actividad no se puede calificar")
	}
}

// gradeMatching compares pairs as a multiset, so a left item may appear in
// several pairs.
func gradeMatching(p model.Matching, input string) (bool, error) {
	type pair struct{ left, right string }

	want := make(map[pair]int, len(p.Pairs))
	for _, pr := range p.Pairs {
		want[pair{normalize(pr.Left), normalize(pr.Right)}]++
	}

	n := 0
	for _, entry := range strings.Split(input, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		left, right, ok := strings.Cut(entry, "=")
		if !ok {
			return false, serr.Validation("usa el formato izquierda=derecha")
		}

		k := pair{normalize(left), normalize(right)}
		if want[k] == 0 {
			return false, nil
		}
		want[k]--
		n++
	}
	return n == len(p.Pairs), nil
}

func parseBool(s string) (bool, error) {
	switch normalize(s) {
	case "v", "true", "verdadero", "t":
		return true, nil
	case "f", "false", "falso":
		return false, nil
	}
	return false, serr.Validation("responde verdadero o falso")
}

func matchesAny(input string, answers []string) bool {
	n := normalize(input)
	return slices.ContainsFunc(answers, func(a string) bool {
		return normalize(a) == n
	})
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// words drops punctuation before normalizing.
func words(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.ToLower(strings.Join(fields, " "))
}
