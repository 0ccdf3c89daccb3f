// Package prompt loads the assistant's prompt spec from a yaml file and
// generates the suggested-question list shown before the first turn.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

const suggestionCount = 4

type Spec struct {
	System string `yaml:"system"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
	Suggestions struct {
		Prompt    string   `yaml:"prompt"`
		Fallbacks []string `yaml:"fallbacks"`
	} `yaml:"suggestions"`
}

func LoadSpec(path string) (*Spec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec Spec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	if strings.TrimSpace(spec.System) == "" {
		return nil, fmt.Errorf("prompt spec %s has no system prompt", path)
	}
	if len(spec.Suggestions.Fallbacks) != suggestionCount {
		return nil, fmt.Errorf("prompt spec %s must declare exactly %d suggestion fallbacks", path, suggestionCount)
	}
	return &spec, nil
}

// Generator answers prompt-related questions for the server: the system
// prompt for chat turns and the suggested-question list.
type Generator struct {
	spec   *Spec
	client *openai.Client
	model  string
}

func NewGenerator(spec *Spec, client *openai.Client, model string) *Generator {
	return &Generator{spec: spec, client: client, model: model}
}

// System returns the chat system prompt with the year placeholder
// substituted, so "latest generation" guidance stays current.
func (g *Generator) System() string {
	return withYear(g.spec.System)
}

func (g *Generator) Temperature() float32 {
	if g.spec.Style.Temperature <= 0 {
		return 0.7
	}
	return g.spec.Style.Temperature
}

func (g *Generator) MaxTokens() int {
	return g.spec.Style.MaxTokens
}

// Fallbacks returns the fixed suggestion list used when generation
// fails. Always exactly four strings.
func (g *Generator) Fallbacks() []string {
	out := make([]string, len(g.spec.Suggestions.Fallbacks))
	for i, f := range g.spec.Suggestions.Fallbacks {
		out[i] = withYear(f)
	}
	return out
}

// Suggestions asks the model for four suggested questions as a JSON
// array of strings. Anything other than exactly four strings is an
// error; callers fall back to Fallbacks.
func (g *Generator) Suggestions(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.8,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: g.spec.Suggestions.Prompt},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices")
	}
	return parseSuggestionArray(resp.Choices[0].Message.Content)
}

// parseSuggestionArray decodes the model output, salvaging the span from
// the first '[' to the last ']' when the model wrapped the array in
// prose or a code fence.
func parseSuggestionArray(raw string) ([]string, error) {
	var prompts []string
	if err := json.Unmarshal([]byte(raw), &prompts); err != nil {
		first := strings.IndexByte(raw, '[')
		last := strings.LastIndexByte(raw, ']')
		if first < 0 || last <= first {
			return nil, err
		}
		if err2 := json.Unmarshal([]byte(raw[first:last+1]), &prompts); err2 != nil {
			return nil, err
		}
	}
	if len(prompts) != suggestionCount {
		return nil, fmt.Errorf("expected %d suggestions, got %d", suggestionCount, len(prompts))
	}
	for _, p := range prompts {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("empty suggestion in model output")
		}
	}
	return prompts, nil
}

func withYear(s string) string {
	return strings.ReplaceAll(s, "{{year}}", strconv.Itoa(time.Now().Year()))
}
