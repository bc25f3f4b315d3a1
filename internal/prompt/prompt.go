// Package prompt asks the operator questions and returns their answers.
//
// Callers describe questions as data and receive an Answers map keyed by
// question name; how questions are rendered is up to the Asker. Menu
// choices carry a Value that is either a domain Key or a caller-defined
// Sentinel, which callers resolve with a type switch.
package prompt

import (
	"context"
	"errors"
	"time"
)

// ErrAborted is returned when input ends before a question is answered.
var ErrAborted = errors.New("prompt aborted")

// Kind is the type of answer a question expects.
type Kind int

const (
	// Input asks for free text.
	Input Kind = iota
	// Select asks for exactly one choice.
	Select
	// MultiSelect asks for any number of choices.
	MultiSelect
	// Date asks for a point in time.
	Date
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Select:
		return "select"
	case MultiSelect:
		return "multi-select"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// Value is the payload of a choice: a Key or a Sentinel.
type Value interface {
	isValue()
}

// Key is a choice that names a domain object, such as a section key.
type Key string

// Sentinel is a choice that stands for an action rather than an object,
// such as "back" or "new section". Callers define their own constants.
type Sentinel int

func (Key) isValue()      {}
func (Sentinel) isValue() {}

// Choice is one option of a Select or MultiSelect question.
type Choice struct {
	Label string
	Value Value
}

// Question describes one prompt.
type Question struct {
	Kind    Kind
	Name    string
	Message string
	Choices []Choice

	// Default is the text used when an Input is answered blank.
	Default string
	// DefaultTime is offered by a Date question.
	DefaultTime time.Time
	// Selected lists the choices a MultiSelect starts with.
	Selected []Value
}

// Answer holds the reply to one question. Only the field matching the
// question's Kind is set.
type Answer struct {
	Text   string
	Value  Value
	Values []Value
	Time   time.Time
}

// Answers maps question names to answers.
type Answers map[string]Answer

// Text returns the text answer to the named question.
func (a Answers) Text(name string) string { return a[name].Text }

// Value returns the single choice made for the named question.
func (a Answers) Value(name string) Value { return a[name].Value }

// Values returns the choices made for the named question.
func (a Answers) Values(name string) []Value { return a[name].Values }

// Time returns the time given for the named question.
func (a Answers) Time(name string) time.Time { return a[name].Time }

// Asker asks questions in order and returns all answers at once.
type Asker interface {
	Ask(ctx context.Context, questions ...Question) (Answers, error)
}

// Keys returns the Key values in vs, in order, skipping sentinels.
func Keys(vs []Value) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if k, ok := v.(Key); ok {
			out = append(out, string(k))
		}
	}
	return out
}

// KeyChoices builds one choice per key with the key as its label.
func KeyChoices(keys []string) []Choice {
	out := make([]Choice, len(keys))
	for i, k := range keys {
		out[i] = Choice{Label: k, Value: Key(k)}
	}
	return out
}
