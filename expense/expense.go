// Package expense extracts priced items from free text with a generative
// text model and recovers a strict result from its loosely formatted answer.
package expense

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/llm"
	"github.com/kbukum/aigateway/provider"
	"github.com/kbukum/aigateway/validation"
)

// Name identifies the provider in logs, metrics and health output.
const Name = "expense"

// MaxTextLength is the longest accepted input, in characters.
const MaxTextLength = 10000

// Prompt is the extraction instruction. The user text is appended to it.
//
//go:embed prompt.txt
var Prompt string

// Request is the text to extract expenses from.
type Request struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// Provider is the text variant of the gateway provider.
type Provider = provider.RequestResponse[Request, Result]

// New composes the expense provider on top of a text model.
func New(model provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]) Provider {
	return provider.Adapt(model, Name, BuildRequest, func(resp llm.CompletionResponse) (Result, error) {
		return Normalize(resp.Content)
	})
}

// BuildPrompt returns the full prompt for text.
func BuildPrompt(text string) string {
	return Prompt + text
}

// BuildRequest trims and validates the text, then wraps the prompt as a
// single user message.
func BuildRequest(_ context.Context, req Request) (llm.CompletionRequest, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := validation.Validate(req); err != nil {
		return llm.CompletionRequest{}, err
	}
	return llm.CompletionRequest{
		Messages: []llm.Message{llm.UserMessage(BuildPrompt(req.Text))},
	}, nil
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractCandidate returns the body of the first ```json fenced block, or
// the whole text when there is none.
func ExtractCandidate(raw string) string {
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}

// wireResult mirrors Result with pointers so that absent keys can be told
// apart from zero values.
type wireResult struct {
	Expenses *[]wireExpense `json:"expenses"`
	Total    *float64       `json:"total"`
}

type wireExpense struct {
	Item  *string `json:"item"`
	Price *Price  `json:"price"`
}

// Decode strictly decodes a candidate: unknown fields, trailing data,
// mistyped prices and missing keys are errors. A truncated answer must not
// read as a zero total.
func Decode(candidate string) (Result, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(candidate)))
	dec.DisallowUnknownFields()

	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return Result{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Result{}, fmt.Errorf("invalid character after top-level value")
	}
	if w.Expenses == nil {
		return Result{}, fmt.Errorf(`missing required field "expenses"`)
	}
	if w.Total == nil {
		return Result{}, fmt.Errorf(`missing required field "total"`)
	}

	r := Result{Expenses: make([]Expense, len(*w.Expenses)), Total: *w.Total}
	for i, e := range *w.Expenses {
		switch {
		case e.Item == nil:
			return Result{}, fmt.Errorf(`expenses[%d]: missing required field "item"`, i)
		case e.Price == nil:
			return Result{}, fmt.Errorf(`expenses[%d]: missing required field "price"`, i)
		}
		r.Expenses[i] = Expense{Item: *e.Item, Price: *e.Price}
	}
	return r, nil
}

// Normalize turns a raw model answer into a Result. Failures are
// PARSE_ERROR and carry raw verbatim.
func Normalize(raw string) (Result, error) {
	r, err := Decode(ExtractCandidate(raw))
	if err != nil {
		return Result{}, errors.Parse(err.Error(), raw)
	}
	return r, nil
}

// Format renders a result as indented JSON for terminals.
func Format(r Result) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(r)
	return strings.TrimRight(buf.String(), "\n")
}
