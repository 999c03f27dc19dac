package activity

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/pkg/serr"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

const defaultMatchingInstructions = "Empareja los elementos de la columna izquierda con los de la derecha."

type MatchingForm struct {
	base
	pairs          []model.Pair
	shuffleOptions bool
	allowDrag      bool
	groupMode      bool
}

func NewMatchingForm(existing *model.Activity, cb Callbacks, opts ...Option) *MatchingForm {
	f := &MatchingForm{
		base:           newBase(model.KindMatching, existing, cb, defaultMatchingInstructions, opts),
		shuffleOptions: true,
		allowDrag:      true,
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.Matching); ok {
			f.pairs = slices.Clone(p.Pairs)
			f.shuffleOptions = p.ShuffleOptions
			f.allowDrag = p.AllowDrag
			f.groupMode = p.GroupMode
		}
	}
	if !f.editing || f.feedback.IsZero() {
		f.feedback = model.Feedback{
			Correct:   "¡Excelente! Has emparejado correctamente todos los elementos.",
			Incorrect: "Algunos emparejamientos no son correctos. Revísalos nuevamente.",
		}
	}
	return f
}

// AddPair appends a pair with a fresh id. Both sides are required.
func (f *MatchingForm) AddPair(left, right, hint, group string) (model.Pair, error) {
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" {
		err := serr.Validation("completa ambos campos del par")
		f.notifier.Error(serr.Message(err))
		return model.Pair{}, err
	}

	p := model.Pair{
		ID:    f.ids.NewID(),
		Left:  left,
		Right: right,
		Hint:  strings.TrimSpace(hint),
		Group: strings.TrimSpace(group),
	}
	f.pairs = append(f.pairs, p)
	f.notifier.Success("Par agregado")
	return p, nil
}

func (f *MatchingForm) RemovePair(id string) bool {
	i := slices.IndexFunc(f.pairs, func(p model.Pair) bool { return p.ID == id })
	if i < 0 {
		return false
	}
	f.pairs = slices.Delete(f.pairs, i, i+1)
	return true
}

// ShufflePairs randomizes the pair order and gives every pair a new id. Ids
// held from before the shuffle no longer resolve.
func (f *MatchingForm) ShufflePairs() {
	for i := range f.pairs {
		f.pairs[i].ID = f.ids.NewID()
	}
	f.shuffler.Shuffle(len(f.pairs), func(i, j int) {
		f.pairs[i], f.pairs[j] = f.pairs[j], f.pairs[i]
	})
	f.notifier.Success("Pares mezclados")
}

func (f *MatchingForm) Pairs() []model.Pair {
	return slices.Clone(f.pairs)
}

func (f *MatchingForm) Groups() []string {
	return model.DistinctGroups(f.pairs)
}

func (f *MatchingForm) SetShuffleOptions(v bool) { f.shuffleOptions = v }
func (f *MatchingForm) SetAllowDrag(v bool)      { f.allowDrag = v }
func (f *MatchingForm) SetGroupMode(v bool)      { f.groupMode = v }

func (f *MatchingForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}

	return f.commit(model.Matching{
		Pairs:          slices.Clone(f.pairs),
		ShuffleOptions: f.shuffleOptions,
		AllowDrag:      f.allowDrag,
		GroupMode:      f.groupMode,
	})
}
