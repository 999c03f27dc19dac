package activity

import (
	"slices"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
)

type WordOrderForm struct {
	base
	order []string
	words []string
}

func NewWordOrderForm(existing *model.Activity, cb Callbacks, opts ...Option) *WordOrderForm {
	f := &WordOrderForm{
		base: newBase(model.KindWordOrder, existing, cb, "Ordena las palabras para formar una oración.", opts),
	}
	if existing != nil {
		if p, ok := existing.Payload.(model.WordOrder); ok {
			f.order = slices.Clone(p.CorrectOrder)
			f.words = slices.Clone(p.Words)
		}
	}
	return f
}

// SetSentence splits s into the expected word order and reshuffles the word
// bag.
func (f *WordOrderForm) SetSentence(s string) {
	f.order = strings.Fields(s)
	f.words = slices.Clone(f.order)
	f.shuffler.Shuffle(len(f.words), func(i, j int) {
		f.words[i], f.words[j] = f.words[j], f.words[i]
	})
}

func (f *WordOrderForm) Sentence() string {
	return strings.Join(f.order, " ")
}

// SetWords overrides the word bag shown to the student.
func (f *WordOrderForm) SetWords(words []string) {
	f.words = slices.Clone(words)
}

func (f *WordOrderForm) Words() []string {
	return slices.Clone(f.words)
}

func (f *WordOrderForm) CorrectOrder() []string {
	return slices.Clone(f.order)
}

func (f *WordOrderForm) Submit() (model.Activity, error) {
	if err := f.checkPrompt(); err != nil {
		return f.fail(err)
	}

	return f.commit(model.WordOrder{
		Words:        trimAll(f.words),
		CorrectOrder: trimAll(f.order),
	})
}
