package prompt

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Reply is one scripted answer.
type Reply struct {
	kind        Kind
	useDefault  bool
	text        string
	value       Value
	values      []Value
	when        time.Time
	description string
}

// Text answers an Input question.
func Text(s string) Reply {
	return Reply{kind: Input, text: s, description: fmt.Sprintf("text %q", s)}
}

// Choose answers a Select question with the choice carrying v.
func Choose(v Value) Reply {
	return Reply{kind: Select, value: v, description: fmt.Sprintf("choice %#v", v)}
}

// ChooseMany answers a MultiSelect question.
func ChooseMany(vs ...Value) Reply {
	return Reply{kind: MultiSelect, values: vs, description: fmt.Sprintf("choices %v", vs)}
}

// At answers a Date question.
func At(t time.Time) Reply {
	return Reply{kind: Date, when: t, description: "date " + t.String()}
}

// Default accepts the question's default, whatever its kind.
func Default() Reply {
	return Reply{useDefault: true, description: "default"}
}

// Script is an Asker that replays prepared replies in order. It records
// every question it is asked. Running out of replies returns ErrAborted.
type Script struct {
	replies []Reply
	Asked   []Question
}

// NewScript returns a Script that will give replies in order.
func NewScript(replies ...Reply) *Script {
	return &Script{replies: replies}
}

// Remaining returns the number of unused replies.
func (s *Script) Remaining() int {
	return len(s.replies)
}

// Ask implements Asker. A reply that does not fit its question, such as a
// choice the question does not offer, is an error.
func (s *Script) Ask(ctx context.Context, questions ...Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.Asked = append(s.Asked, q)
		if len(s.replies) == 0 {
			return nil, fmt.Errorf("%w: no reply for %q (%s)", ErrAborted, q.Name, q.Message)
		}
		r := s.replies[0]
		s.replies = s.replies[1:]

		a, err := r.answer(q)
		if err != nil {
			return nil, fmt.Errorf("scripted %s for %q (%s): %w", r.description, q.Name, q.Message, err)
		}
		answers[q.Name] = a
	}
	return answers, nil
}

func (r Reply) answer(q Question) (Answer, error) {
	if r.useDefault {
		return defaultAnswer(q), nil
	}
	if r.kind != q.Kind {
		return Answer{}, fmt.Errorf("question is %v", q.Kind)
	}

	switch q.Kind {
	case Input:
		if r.text == "" {
			return Answer{Text: q.Default}, nil
		}
		return Answer{Text: r.text}, nil
	case Select:
		if !offers(q, r.value) {
			return Answer{}, fmt.Errorf("not among %v", labels(q))
		}
		return Answer{Value: r.value}, nil
	case MultiSelect:
		for _, v := range r.values {
			if !offers(q, v) {
				return Answer{}, fmt.Errorf("%#v not among %v", v, labels(q))
			}
		}
		return Answer{Values: slices.Clone(r.values)}, nil
	case Date:
		return Answer{Time: r.when}, nil
	}
	return Answer{}, fmt.Errorf("unsupported question kind %v", q.Kind)
}

func defaultAnswer(q Question) Answer {
	switch q.Kind {
	case Select:
		if len(q.Choices) > 0 {
			return Answer{Value: q.Choices[0].Value}
		}
	case MultiSelect:
		return Answer{Values: slices.Clone(q.Selected)}
	case Date:
		return Answer{Time: q.DefaultTime}
	}
	return Answer{Text: q.Default}
}

func offers(q Question, v Value) bool {
	return slices.ContainsFunc(q.Choices, func(c Choice) bool { return c.Value == v })
}

func labels(q Question) []string {
	out := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		out[i] = c.Label
	}
	return out
}
