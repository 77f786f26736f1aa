// Package prompts holds the prompt templates sent to the language model.
package prompts

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"text/template"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var embedded []byte

// FileName of the optional override file in the config directory.
const FileName = "prompts.yaml"

// Catalogue of raw templates.
type Catalogue struct {
	Reasoning     string `yaml:"reasoning"`
	React         string `yaml:"react"`
	GenerateFinal string `yaml:"generate-final"`
}

// ReasoningData is substituted into the reasoning template.
type ReasoningData struct {
	Question string
}

// ReactData is substituted into the ReAct template.
type ReactData struct {
	Tools      string
	ToolNames  string
	Question   string
	Scratchpad string
}

// Default returns the embedded catalogue.
func Default() Catalogue {
	var c Catalogue
	if err := yaml.Unmarshal(embedded, &c); err != nil {
		// The embedded file is part of the binary, so this is a build defect
		panic(fmt.Sprintf("embedded prompts.yaml is malformed: %v", err))
	}
	return c
}

// Load the embedded catalogue, then overlay any non-empty templates found in
// <configDir>/prompts.yaml. A missing override file is not an error.
func Load(configDir string) (Catalogue, error) {
	c := Default()
	if configDir == "" {
		return c, nil
	}
	p := path.Join(configDir, FileName)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("failed to read prompt overrides: %w", err)
	}
	var override Catalogue
	if err := yaml.Unmarshal(b, &override); err != nil {
		return c, fmt.Errorf("failed to unmarshal prompt overrides at: '%v', error: %w", p, err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("loaded prompt overrides from: '%v'\n", p))
	}
	c.merge(override)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("failed to validate prompt overrides at: '%v', error: %w", p, err)
	}
	return c, nil
}

func (c *Catalogue) merge(o Catalogue) {
	if strings.TrimSpace(o.Reasoning) != "" {
		c.Reasoning = o.Reasoning
	}
	if strings.TrimSpace(o.React) != "" {
		c.React = o.React
	}
	if strings.TrimSpace(o.GenerateFinal) != "" {
		c.GenerateFinal = o.GenerateFinal
	}
}

// Validate that every template parses.
func (c Catalogue) Validate() error {
	for name, t := range map[string]string{
		"reasoning":      c.Reasoning,
		"react":          c.React,
		"generate-final": c.GenerateFinal,
	} {
		if _, err := template.New(name).Parse(t); err != nil {
			return fmt.Errorf("template '%v': %w", name, err)
		}
	}
	return nil
}

// RenderReasoning substitutes the question into the reasoning template.
func (c Catalogue) RenderReasoning(question string) (string, error) {
	return render("reasoning", c.Reasoning, ReasoningData{Question: question})
}

// RenderReact substitutes tools, question and scratchpad into the ReAct template.
func (c Catalogue) RenderReact(d ReactData) (string, error) {
	return render("react", c.React, d)
}

func render(name, tmpl string, data any) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template '%v': %w", name, err)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute template '%v': %w", name, err)
	}
	return sb.String(), nil
}
