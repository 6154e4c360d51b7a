// Package knowledge is the offline, rule-based reply engine used when no
// remote AI tier is available. It never fails.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/mindease/internal/models"
)

//go:embed knowledge.yaml
var embeddedBase []byte

const (
	wholeWordScore = 3
	substringScore = 1
)

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

type document struct {
	Categories []models.KnowledgeCategory `yaml:"categories"`
	Generic    []string                   `yaml:"generic"`
}

type compiled struct {
	models.KnowledgeCategory
	patterns []*regexp.Regexp
}

// Engine scores text against the knowledge base. It is immutable after
// construction and safe for concurrent use if its Picker is.
type Engine struct {
	categories []compiled
	generic    []string
	picker     Picker
}

// New loads the embedded knowledge base. A nil picker uses the global
// math/rand/v2 source.
func New(picker Picker) (*Engine, error) {
	doc, err := parse(embeddedBase)
	if err != nil {
		return nil, err
	}
	return NewFromCategories(doc.Categories, doc.Generic, picker)
}

// MustNew is like New but panics if the embedded knowledge base fails to load.
func MustNew(picker Picker) *Engine {
	e, err := New(picker)
	if err != nil {
		panic(err)
	}
	return e
}

func parse(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	return &doc, nil
}

// NewFromCategories builds an engine over cats in the given order.
func NewFromCategories(cats []models.KnowledgeCategory, generic []string, picker Picker) (*Engine, error) {
	if len(generic) == 0 {
		return nil, errors.New("knowledge base has no generic responses")
	}
	if picker == nil {
		picker = globalPicker{}
	}

	e := &Engine{generic: generic, picker: picker}
	for _, c := range cats {
		if len(c.Responses) == 0 {
			return nil, fmt.Errorf("category %q has no responses", c.ID)
		}
		cc := compiled{KnowledgeCategory: c}
		cc.Keywords = make([]string, len(c.Keywords))
		for i, kw := range c.Keywords {
			kw = strings.ToLower(kw)
			cc.Keywords[i] = kw
			cc.patterns = append(cc.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		}
		e.categories = append(e.categories, cc)
	}
	return e, nil
}

// Classify returns the best scoring category id and its score. The id is
// empty when nothing scored. On equal scores the earlier category wins.
func (e *Engine) Classify(text string) (string, int) {
	best, score := e.best(strings.ToLower(text))
	if best == nil {
		return "", 0
	}
	return best.ID, score
}

// Match returns a reply for text drawn from the winning category, or a
// generic reply with neutral mood when no keyword matched.
func (e *Engine) Match(text string) models.Reply {
	best, _ := e.best(strings.ToLower(text))
	if best == nil {
		return models.Reply{
			Text: e.generic[e.picker.IntN(len(e.generic))],
			Mood: models.MoodNeutral,
		}
	}
	return models.Reply{
		Text: best.Responses[e.picker.IntN(len(best.Responses))],
		Mood: best.Mood,
	}
}

func (e *Engine) best(lower string) (*compiled, int) {
	var best *compiled
	highest := 0
	for i := range e.categories {
		c := &e.categories[i]
		score := 0
		for j, kw := range c.Keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			if c.patterns[j].MatchString(lower) {
				score += wholeWordScore
			} else {
				score += substringScore
			}
		}
		if score > highest {
			highest = score
			best = c
		}
	}
	return best, highest
}
