package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gorewood/lunchlady/internal/output"
)

// DateLayout is the format Date questions accept and display.
const DateLayout = "2006-01-02 15:04"

// Terminal asks questions on a line-oriented terminal. Choices are
// numbered and answered by number.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	styles *output.Styles
	loc    *time.Location
}

// NewTerminal returns a Terminal reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer, color bool) *Terminal {
	return &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		styles: output.NewStyles(color),
		loc:    time.Local,
	}
}

// Ask implements Asker.
func (t *Terminal) Ask(ctx context.Context, questions ...Question) (Answers, error) {
	answers := make(Answers, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			a   Answer
			err error
		)
		switch q.Kind {
		case Input:
			a.Text, err = t.input(q)
		case Select:
			a.Value, err = t.selectOne(q)
		case MultiSelect:
			a.Values, err = t.selectMany(q)
		case Date:
			a.Time, err = t.date(q)
		default:
			err = fmt.Errorf("unsupported question kind %v", q.Kind)
		}
		if err != nil {
			return nil, err
		}
		answers[q.Name] = a
	}
	return answers, nil
}

func (t *Terminal) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) header(q Question, hint string) {
	t.printf("%s %s", t.styles.Accent.Render("?"), t.styles.Bold.Render(q.Message))
	if hint != "" {
		t.printf(" %s", t.styles.Dim.Render("("+hint+")"))
	}
}

func (t *Terminal) input(q Question) (string, error) {
	t.header(q, q.Default)
	t.printf(" ")
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return q.Default, nil
	}
	return line, nil
}

func (t *Terminal) listChoices(q Question, marked func(Choice) bool) {
	t.printf("\n")
	for i, c := range q.Choices {
		mark := " "
		if marked != nil && marked(c) {
			mark = t.styles.Success.Render("x")
		}
		if marked != nil {
			t.printf("  %s [%s] %s\n", t.styles.Key.Render(fmt.Sprintf("%2d", i+1)), mark, c.Label)
		} else {
			t.printf("  %s %s\n", t.styles.Key.Render(fmt.Sprintf("%2d", i+1)), c.Label)
		}
	}
}

func (t *Terminal) selectOne(q Question) (Value, error) {
	if len(q.Choices) == 0 {
		return nil, fmt.Errorf("question %q has no choices", q.Name)
	}
	for {
		t.header(q, "")
		t.listChoices(q, nil)
		t.printf("  %s ", t.styles.Dim.Render("Choice:"))
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(q.Choices) {
			return q.Choices[n-1].Value, nil
		}
		t.printf("%s\n", t.styles.Warning.Render(fmt.Sprintf("Enter a number from 1 to %d.", len(q.Choices))))
	}
}

// selectMany reads a comma or space separated list of numbers. A blank line
// keeps the preselected choices and "-" selects none.
func (t *Terminal) selectMany(q Question) ([]Value, error) {
	isSelected := func(c Choice) bool { return slices.Contains(q.Selected, c.Value) }
	for {
		t.header(q, "numbers separated by commas, blank keeps marked, - for none")
		t.listChoices(q, isSelected)
		t.printf("  %s ", t.styles.Dim.Render("Choices:"))
		line, err := t.readLine()
		if err != nil {
			return nil, err
		}

		switch line {
		case "":
			var out []Value
			for _, c := range q.Choices {
				if isSelected(c) {
					out = append(out, c.Value)
				}
			}
			return out, nil
		case "-":
			return []Value{}, nil
		}

		picked, ok := parseIndexes(line, len(q.Choices))
		if !ok {
			t.printf("%s\n", t.styles.Warning.Render(fmt.Sprintf("Enter numbers from 1 to %d.", len(q.Choices))))
			continue
		}
		out := make([]Value, 0, len(picked))
		for _, i := range picked {
			out = append(out, q.Choices[i].Value)
		}
		return out, nil
	}
}

// parseIndexes returns the distinct zero-based indexes named in line, in
// the order given.
func parseIndexes(line string, n int) ([]int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	var out []int
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil || i < 1 || i > n {
			return nil, false
		}
		if !slices.Contains(out, i-1) {
			out = append(out, i-1)
		}
	}
	return out, len(out) > 0
}

func (t *Terminal) date(q Question) (time.Time, error) {
	def := q.DefaultTime
	if def.IsZero() {
		def = time.Now()
	}
	def = def.In(t.loc)
	for {
		t.header(q, def.Format(DateLayout))
		t.printf(" ")
		line, err := t.readLine()
		if err != nil {
			return time.Time{}, err
		}
		if line == "" {
			return def, nil
		}
		for _, layout := range []string{DateLayout, "2006-01-02"} {
			if parsed, err := time.ParseInLocation(layout, line, t.loc); err == nil {
				return parsed, nil
			}
		}
		t.printf("%s\n", t.styles.Warning.Render("Use the form "+DateLayout+"."))
	}
}
