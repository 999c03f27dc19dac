// Package draft reads lesson drafts written in YAML and replays them
// through the authoring wizard.
package draft

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gamma-omg/speaklexi/internal/services/lessons/internal/model"
	"gopkg.in/yaml.v3"
)

type Draft struct {
	CourseID    int64      `yaml:"curso_id"`
	Title       string     `yaml:"titulo"`
	Description string     `yaml:"descripcion"`
	Category    string     `yaml:"categoria"`
	Duration    int        `yaml:"duracion_estimada"`
	XP          int        `yaml:"puntos_xp"`
	Order       int        `yaml:"orden"`
	Tags        []string   `yaml:"etiquetas"`
	Content     Content    `yaml:"contenido"`
	Activities  []Activity `yaml:"actividades"`
	Media       Media      `yaml:"multimedia"`
}

type Content struct {
	Introduction string   `yaml:"introduccion"`
	Objectives   []string `yaml:"objetivos"`
	Vocabulary   []string `yaml:"vocabulario_clave"`
	Examples     []string `yaml:"ejemplos"`
}

type Feedback struct {
	Correct     string `yaml:"correcto"`
	Incorrect   string `yaml:"incorrecto"`
	Explanation string `yaml:"explicacion"`
}

// Activity holds the fields of every kind; only the ones for Kind are read.
type Activity struct {
	Kind         string   `yaml:"tipo"`
	Prompt       string   `yaml:"pregunta"`
	Instructions string   `yaml:"instrucciones"`
	Hint         string   `yaml:"pista"`
	Points       *int     `yaml:"puntos"`
	TimeLimit    int      `yaml:"tiempo_limite"`
	Feedback     Feedback `yaml:"retroalimentacion"`

	// multiple_choice
	Options []string `yaml:"opciones"`
	Answer  string   `yaml:"respuesta"`

	// fill_blank, translation
	Sentence string   `yaml:"oracion"`
	Source   string   `yaml:"texto_origen"`
	Answers  []string `yaml:"respuestas"`

	// true_false
	True *bool `yaml:"verdadero"`

	// word_order
	Phrase string   `yaml:"frase"`
	Words  []string `yaml:"palabras"`

	// matching
	Pairs          []Pair `yaml:"pares"`
	ShuffleOptions *bool  `yaml:"mezclar_opciones"`
	AllowDrag      *bool  `yaml:"permite_arrastrar"`
	GroupMode      bool   `yaml:"modo_grupos"`
}

type Pair struct {
	Left  string `yaml:"izquierda"`
	Right string `yaml:"derecha"`
	Hint  string `yaml:"pista"`
	Group string `yaml:"grupo"`
}

type Media struct {
	Description string   `yaml:"descripcion"`
	Category    string   `yaml:"categoria"`
	Files       []string `yaml:"archivos"`
}

// Load decodes a single YAML draft. Unknown fields and unknown activity
// kinds are rejected.
func Load(r io.Reader) (Draft, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Draft
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return Draft{}, fmt.Errorf("decode draft: empty document")
		}
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}

	for i, a := range d.Activities {
		if _, err := model.ParseKind(strings.TrimSpace(a.Kind)); err != nil {
			return Draft{}, fmt.Errorf("activity %d: %w", i+1, err)
		}
	}
	return d, nil
}
