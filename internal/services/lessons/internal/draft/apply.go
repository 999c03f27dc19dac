package draft

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/activity"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/wizard"
)

type commonFields interface {
	SetPrompt(string)
	SetInstructions(string)
	SetHint(string)
	SetPoints(int)
	SetTimeLimit(int)
	SetFeedback(model.Feedback)
}

// Apply fills w with the draft and leaves it on the media step, ready to
// submit. Media paths are resolved against baseDir. w must be initialized.
func (d Draft) Apply(ctx context.Context, w *wizard.Wizard, baseDir string) error {
	if err := w.SelectCourse(ctx, d.CourseID); err != nil {
		return err
	}

	w.SetTitle(d.Title)
	w.SetDescription(d.Description)
	w.SetCategory(d.Category)
	w.SetDuration(d.Duration)
	w.SetXP(d.XP)
	w.SetOrder(d.Order)
	w.SetIntroduction(d.Content.Introduction)
	for _, t := range d.Tags {
		w.AddTag(t)
	}
	for _, o := range d.Content.Objectives {
		w.AddObjective(o)
	}
	for _, v := range d.Content.Vocabulary {
		w.AddVocabulary(v)
	}
	for _, e := range d.Content.Examples {
		w.AddExample(e)
	}

	if err := w.Next(); err != nil {
		return err
	}
	if err := w.Next(); err != nil {
		return err
	}

	for i, a := range d.Activities {
		if err := addActivity(w, a); err != nil {
			return fmt.Errorf("activity %d: %w", i+1, err)
		}
	}

	if err := w.Next(); err != nil {
		return err
	}

	for _, p := range d.Media.Files {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		if _, err := w.StagePath(p); err != nil {
			return err
		}
	}
	w.SetMediaInfo(d.Media.Description, d.Media.Category)
	return nil
}

func addActivity(w *wizard.Wizard, a Activity) error {
	kind, err := model.ParseKind(strings.TrimSpace(a.Kind))
	if err != nil {
		return err
	}

	form, err := w.OpenActivity(kind)
	if err != nil {
		return err
	}

	if c, ok := form.(commonFields); ok {
		c.SetPrompt(a.Prompt)
		if a.Instructions != "" {
			c.SetInstructions(a.Instructions)
		}
		c.SetHint(a.Hint)
		if a.Points != nil {
			c.SetPoints(*a.Points)
		}
		c.SetTimeLimit(a.TimeLimit)
		if fb := model.Feedback(a.Feedback); !fb.IsZero() {
			c.SetFeedback(fb)
		}
	}

	if err := fill(form, a); err != nil {
		form.Cancel()
		return err
	}

	if _, err := form.Submit(); err != nil {
		form.Cancel()
		return err
	}
	return nil
}

func fill(form activity.Form, a Activity) error {
	switch f := form.(type) {
	case *activity.MultipleChoiceForm:
		f.SetOptions(a.Options)
		f.SetAnswer(a.Answer)
	case *activity.FillBlankForm:
		f.SetSentence(a.Sentence)
		f.SetAnswers(a.Answers)
	case *activity.TranslationForm:
		f.SetSource(a.Source)
		f.SetAnswers(a.Answers)
	case *activity.TrueFalseForm:
		if a.True != nil {
			f.Select(*a.True)
		}
	case *activity.WordOrderForm:
		f.SetSentence(a.Phrase)
		if len(a.Words) > 0 {
			f.SetWords(a.Words)
		}
	case *activity.MatchingForm:
		f.SetGroupMode(a.GroupMode)
		if a.ShuffleOptions != nil {
			f.SetShuffleOptions(*a.ShuffleOptions)
		}
		if a.AllowDrag != nil {
			f.SetAllowDrag(*a.AllowDrag)
		}
		for _, p := range a.Pairs {
			if _, err := f.AddPair(p.Left, p.Right, p.Hint, p.Group); err != nil {
				return err
			}
		}
	}
	return nil
}
