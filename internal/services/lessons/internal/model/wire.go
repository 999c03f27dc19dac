package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type wireActivity struct {
	ID           int64           `json:"id,omitempty"`
	LessonID     int64           `json:"leccion_id,omitempty"`
	Kind         Kind            `json:"tipo"`
	Prompt       string          `json:"pregunta"`
	Instructions string          `json:"instrucciones,omitempty"`
	Options      json.RawMessage `json:"opciones,omitempty"`
	Answer       json.RawMessage `json:"respuesta_correcta"`
	Feedback     *Feedback       `json:"retroalimentacion,omitempty"`
	Hint         string          `json:"pista,omitempty"`
	Points       int             `json:"puntos"`
	Order        int             `json:"orden"`
	TimeLimit    int             `json:"tiempo_limite,omitempty"`
	MediaID      *int64          `json:"multimedia_id,omitempty"`
}

type fillBlankOptions struct {
	Sentence string `json:"oracion,omitempty"`
}

type matchingOptions struct {
	Pairs          []Pair   `json:"pares"`
	ShuffleOptions bool     `json:"mezclarOpciones"`
	AllowDrag      bool     `json:"permiteArrastrar"`
	GroupMode      bool     `json:"modoGrupos"`
	Groups         []string `json:"grupos,omitempty"`
}

type matchingAnswer struct {
	ID    string `json:"id"`
	Left  string `json:"izquierda"`
	Right string `json:"derecha"`
	Group string `json:"grupo,omitempty"`
}

type translationOptions struct {
	Source string `json:"texto_origen,omitempty"`
}

type wordOrderOptions struct {
	Words []string `json:"palabras"`
}

type listenRepeatOptions struct {
	Phrase string `json:"frase"`
}

var trueFalseOptions = []string{"Verdadero", "Falso"}

func (a Activity) MarshalJSON() ([]byte, error) {
	if a.Payload == nil {
		return nil, fmt.Errorf("marshal activity: missing payload")
	}

	w := wireActivity{
		ID:           a.ID,
		LessonID:     a.LessonID,
		Kind:         a.Payload.Kind(),
		Prompt:       a.Prompt,
		Instructions: a.Instructions,
		Hint:         a.Hint,
		Points:       a.Points,
		Order:        a.Order,
		TimeLimit:    a.TimeLimit,
		MediaID:      a.MediaID,
	}
	if !a.Feedback.IsZero() {
		fb := a.Feedback
		w.Feedback = &fb
	}

	var opts, answer any
	switch p := a.Payload.(type) {
	case MultipleChoice:
		opts, answer = p.Options, p.Answer
	case FillBlank:
		opts, answer = fillBlankOptions{Sentence: p.Sentence}, p.Answers
	case Matching:
		mo := matchingOptions{
			Pairs:          p.Pairs,
			ShuffleOptions: p.ShuffleOptions,
			AllowDrag:      p.AllowDrag,
			GroupMode:      p.GroupMode,
		}
		if p.GroupMode {
			mo.Groups = p.Groups()
		}
		ans := make([]matchingAnswer, 0, len(p.Pairs))
		for _, pair := range p.Pairs {
			ans = append(ans, matchingAnswer{ID: pair.ID, Left: pair.Left, Right: pair.Right, Group: pair.Group})
		}
		opts, answer = mo, ans
	case Translation:
		opts, answer = translationOptions{Source: p.Source}, p.Answers
	case TrueFalse:
		opts, answer = trueFalseOptions, p.Answer
	case WordOrder:
		opts, answer = wordOrderOptions{Words: p.Words}, p.CorrectOrder
	case ListenRepeat:
		opts, answer = listenRepeatOptions{Phrase: p.Phrase}, p.Phrase
	default:
		return nil, fmt.Errorf("marshal activity: unsupported payload %T", a.Payload)
	}

	var err error
	if w.Options, err = json.Marshal(opts); err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	if w.Answer, err = json.Marshal(answer); err != nil {
		return nil, fmt.Errorf("marshal answer: %w", err)
	}

	return json.Marshal(w)
}

func (a *Activity) UnmarshalJSON(data []byte) error {
	var w wireActivity
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	payload, err := decodePayload(w.Kind, w.Options, w.Answer)
	if err != nil {
		return err
	}

	*a = Activity{
		ID:           w.ID,
		LessonID:     w.LessonID,
		Prompt:       w.Prompt,
		Instructions: w.Instructions,
		Hint:         w.Hint,
		Points:       w.Points,
		Order:        w.Order,
		TimeLimit:    w.TimeLimit,
		MediaID:      w.MediaID,
		Payload:      payload,
	}
	if w.Feedback != nil {
		a.Feedback = *w.Feedback
	}
	return nil
}

func decodePayload(kind Kind, opts, answer json.RawMessage) (Payload, error) {
	switch kind {
	case KindMultipleChoice:
		var p MultipleChoice
		if err := decodeLoose(opts, &p.Options); err != nil {
			return nil, fmt.Errorf("decode multiple choice options: %w", err)
		}
		if err := decodeLoose(answer, &p.Answer); err != nil {
			return nil, fmt.Errorf("decode multiple choice answer: %w", err)
		}
		return p, nil
	case KindFillBlank:
		var o fillBlankOptions
		p := FillBlank{}
		if err := decodeLoose(opts, &o); err != nil {
			return nil, fmt.Errorf("decode fill blank options: %w", err)
		}
		if err := decodeAnswers(answer, &p.Answers); err != nil {
			return nil, fmt.Errorf("decode fill blank answer: %w", err)
		}
		p.Sentence = o.Sentence
		return p, nil
	case KindMatching:
		var o matchingOptions
		if err := decodeLoose(opts, &o); err != nil {
			return nil, fmt.Errorf("decode matching options: %w", err)
		}
		p := Matching{
			Pairs:          o.Pairs,
			ShuffleOptions: o.ShuffleOptions,
			AllowDrag:      o.AllowDrag,
			GroupMode:      o.GroupMode,
		}
		if len(p.Pairs) == 0 {
			var ans []matchingAnswer
			if err := decodeLoose(answer, &ans); err != nil {
				return nil, fmt.Errorf("decode matching answer: %w", err)
			}
			for _, a := range ans {
				p.Pairs = append(p.Pairs, Pair{ID: a.ID, Left: a.Left, Right: a.Right, Group: a.Group})
			}
		}
		return p, nil
	case KindTranslation:
		var o translationOptions
		p := Translation{}
		if err := decodeLoose(opts, &o); err != nil {
			return nil, fmt.Errorf("decode translation options: %w", err)
		}
		if err := decodeAnswers(answer, &p.Answers); err != nil {
			return nil, fmt.Errorf("decode translation answer: %w", err)
		}
		p.Source = o.Source
		return p, nil
	case KindTrueFalse:
		var p TrueFalse
		if err := decodeLoose(answer, &p.Answer); err != nil {
			return nil, fmt.Errorf("decode true/false answer: %w", err)
		}
		return p, nil
	case KindWordOrder:
		var o wordOrderOptions
		p := WordOrder{}
		if err := decodeLoose(opts, &o); err != nil {
			return nil, fmt.Errorf("decode word order options: %w", err)
		}
		if err := decodeLoose(answer, &p.CorrectOrder); err != nil {
			return nil, fmt.Errorf("decode word order answer: %w", err)
		}
		p.Words = o.Words
		if len(p.Words) == 0 {
			p.Words = append([]string(nil), p.CorrectOrder...)
		}
		return p, nil
	case KindListenRepeat:
		var o listenRepeatOptions
		if err := decodeLoose(opts, &o); err != nil {
			return nil, fmt.Errorf("decode listen/repeat options: %w", err)
		}
		p := ListenRepeat{Phrase: o.Phrase}
		if p.Phrase == "" {
			if err := decodeLoose(answer, &p.Phrase); err != nil {
				return nil, fmt.Errorf("decode listen/repeat answer: %w", err)
			}
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown activity kind %q", kind)
	}
}

// decodeLoose decodes raw into v. Some backends store payloads as JSON text
// inside a string; those are unwrapped once. Empty and null values leave v
// untouched.
func decodeLoose(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	err := json.Unmarshal(raw, v)
	if err == nil {
		return nil
	}

	var s string
	if json.Unmarshal(raw, &s) != nil {
		return err
	}
	return json.Unmarshal([]byte(s), v)
}

// decodeAnswers accepts either a list of accepted answers or a single one.
func decodeAnswers(raw json.RawMessage, out *[]string) error {
	var many []string
	if err := decodeLoose(raw, &many); err == nil {
		*out = many
		return nil
	}

	var one string
	if err := decodeLoose(raw, &one); err != nil {
		return err
	}
	*out = []string{one}
	return nil
}
