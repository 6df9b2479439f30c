// Package prompt asks the operator the few questions the pipeline needs.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
)

// Question identifies one yes/no decision of the pipeline.
type Question string

const (
	RedownloadSeason Question = "Download current season again?"
	ResimulateSeason Question = "Simulate season again?"
	Done             Question = "Done?"
)

// Decider supplies the pipeline's decisions.
type Decider interface {
	Confirm(q Question) (bool, error)
	TeamFilter(known []string) (simulate.Filter, error)
}

const maxSuggestions = 3

// Terminal reads answers line by line from an input stream.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal builds a Terminal over in and out (typically stdin and stdout).
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm asks until it gets y/yes or n/no.
func (t *Terminal) Confirm(q Question) (bool, error) {
	for {
		answer, err := t.ask(fmt.Sprintf("%s [y/n]: ", q))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "please answer y or n")
	}
}

// TeamFilter asks which games to show. Unknown codes re-prompt with the closest known codes.
func (t *Terminal) TeamFilter(known []string) (simulate.Filter, error) {
	for {
		answer, err := t.ask("Show games for team (code, * for all, empty for none): ")
		if err != nil {
			return simulate.FilterNone, err
		}
		f := simulate.ParseFilter(answer)
		if f == simulate.FilterNone || f == simulate.FilterAll || contains(known, string(f)) {
			return f, nil
		}
		msg := fmt.Sprintf("unknown team %q", answer)
		if s := Suggest(string(f), known); len(s) > 0 {
			msg += fmt.Sprintf(", did you mean %s?", strings.Join(s, ", "))
		}
		fmt.Fprintln(t.out, msg)
	}
}

func (t *Terminal) ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Suggest returns up to three known codes that contain input as a subsequence or sit one edit away,
// closest first.
func Suggest(input string, known []string) []string {
	input = strings.ToUpper(strings.TrimSpace(input))
	if input == "" {
		return nil
	}

	type candidate struct {
		code     string
		distance int
	}
	var out []candidate
	for _, code := range known {
		upper := strings.ToUpper(code)
		d := fuzzy.LevenshteinDistance(input, upper)
		if d <= 1 || fuzzy.MatchFold(input, upper) {
			out = append(out, candidate{code: upper, distance: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return out[i].code < out[j].code
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	codes := make([]string, len(out))
	for i, c := range out {
		codes[i] = c.code
	}
	return codes
}

func contains(list []string, code string) bool {
	for _, c := range list {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// Fixed answers every question from preset values; used for non-interactive runs and tests.
type Fixed struct {
	Answers map[Question]bool
	Filter  simulate.Filter
	// Asked records questions in the order they were asked.
	Asked []Question
}

// Confirm returns the preset answer; unset questions answer yes so a run always terminates.
func (f *Fixed) Confirm(q Question) (bool, error) {
	f.Asked = append(f.Asked, q)
	if v, ok := f.Answers[q]; ok {
		return v, nil
	}
	return true, nil
}

// TeamFilter returns the preset filter.
func (f *Fixed) TeamFilter(known []string) (simulate.Filter, error) {
	_ = known
	return f.Filter, nil
}
