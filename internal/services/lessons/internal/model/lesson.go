package model

import (
	"strings"
	"time"
)

type Level string

const (
	LevelBeginner     Level = "principiante"
	LevelIntermediate Level = "intermedio"
	LevelAdvanced     Level = "avanzado"
)

type LessonState string

const (
	StateDraft     LessonState = "borrador"
	StatePublished LessonState = "publicada"
	StateArchived  LessonState = "archivada"
)

type Course struct {
	ID       int64  `json:"id"`
	Code     string `json:"codigo,omitempty"`
	Name     string `json:"nombre"`
	Level    Level  `json:"nivel"`
	Language string `json:"idioma"`
	Active   bool   `json:"activo"`
}

type Content struct {
	Objectives   []string `json:"objetivos"`
	Vocabulary   []string `json:"vocabulario_clave"`
	Introduction string   `json:"introduccion"`
	Examples     []string `json:"ejemplos"`
}

// TagSet keeps tags trimmed, unique and in insertion order.
type TagSet struct {
	tags []string
}

func NewTagSet(tags ...string) TagSet {
	var ts TagSet
	for _, t := range tags {
		ts.Add(t)
	}
	return ts
}

// Add inserts tag and reports whether it was new.
func (ts *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || ts.Has(tag) {
		return false
	}
	ts.tags = append(ts.tags, tag)
	return true
}

func (ts *TagSet) Remove(tag string) {
	tag = strings.TrimSpace(tag)
	for i, t := range ts.tags {
		if t == tag {
			ts.tags = append(ts.tags[:i], ts.tags[i+1:]...)
			return
		}
	}
}

func (ts TagSet) Has(tag string) bool {
	for _, t := range ts.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (ts TagSet) Slice() []string {
	out := make([]string, len(ts.tags))
	copy(out, ts.tags)
	return out
}

func (ts TagSet) Len() int {
	return len(ts.tags)
}

// LessonDraft is the lesson being authored. It has no id until the backend
// creates it.
type LessonDraft struct {
	CourseID    int64
	Title       string
	Description string
	Level       Level
	Language    string
	Category    string
	Duration    int
	XP          int
	Order       int
	Content     Content
	Tags        TagSet
	Activities  []Activity
	Files       []StagedFile
}

// Lesson is a lesson as stored by the backend.
type Lesson struct {
	ID          int64       `json:"id"`
	CourseID    int64       `json:"curso_id"`
	Title       string      `json:"titulo"`
	Description string      `json:"descripcion"`
	Content     Content     `json:"contenido"`
	Level       Level       `json:"nivel"`
	Language    string      `json:"idioma"`
	Category    string      `json:"categoria"`
	Tags        []string    `json:"etiquetas"`
	Duration    int         `json:"duracion_estimada"`
	XP          int         `json:"puntos_xp"`
	Order       int         `json:"orden"`
	State       LessonState `json:"estado"`
	CreatedAt   *time.Time  `json:"creado_en,omitempty"`
}

// Lesson returns the persistent fields of the draft in the initial draft state.
func (d LessonDraft) Lesson() Lesson {
	return Lesson{
		CourseID:    d.CourseID,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Content:     d.Content,
		Level:       d.Level,
		Language:    d.Language,
		Category:    d.Category,
		Tags:        d.Tags.Slice(),
		Duration:    d.Duration,
		XP:          d.XP,
		Order:       d.Order,
		State:       StateDraft,
	}
}
