package pages

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed content/site.yaml
var siteYAML []byte

// Markdown is a copy field written in Markdown. It is rendered to HTML once,
// when the content is loaded.
type Markdown struct {
	Source string
	HTML   template.HTML
}

func (m *Markdown) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&m.Source)
}

type Card struct {
	Title   string   `yaml:"title"`
	Summary Markdown `yaml:"summary"`
	Detail  Markdown `yaml:"detail"`
}

type Section struct {
	Heading string `yaml:"heading"`
	Items   []Card `yaml:"items"`
}

type Hero struct {
	Badge    string   `yaml:"badge"`
	Headline string   `yaml:"headline"`
	Body     string   `yaml:"body"`
	Samples  []string `yaml:"samples"`
}

type CallToAction struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

type Plan struct {
	Name        string   `yaml:"name"`
	Price       string   `yaml:"price"`
	Audience    string   `yaml:"audience"`
	Action      string   `yaml:"action"`
	Highlighted bool     `yaml:"highlighted"`
	Features    []string `yaml:"features"`
}

type Pricing struct {
	Heading    string `yaml:"heading"`
	Subheading string `yaml:"subheading"`
	Plans      []Plan `yaml:"plans"`
}

type TemplateCopy struct {
	Heading      string   `yaml:"heading"`
	Subheading   string   `yaml:"subheading"`
	Instructions Markdown `yaml:"instructions"`
	Samples      []string `yaml:"samples"`
	Footer       []string `yaml:"footer"`
}

// Content is the site copy shared by every page.
type Content struct {
	Name        string       `yaml:"name"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Hero        Hero         `yaml:"hero"`
	Steps       Section      `yaml:"steps"`
	Features    Section      `yaml:"features"`
	CTA         CallToAction `yaml:"cta"`
	Pricing     Pricing      `yaml:"pricing"`
	Template    TemplateCopy `yaml:"template"`
}

func LoadContent() (*Content, error) {
	return ParseContent(siteYAML)
}

func ParseContent(raw []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}

	md := goldmark.New()
	fields := []*Markdown{&content.Template.Instructions}
	for i := range content.Steps.Items {
		fields = append(fields, &content.Steps.Items[i].Summary, &content.Steps.Items[i].Detail)
	}
	for i := range content.Features.Items {
		fields = append(fields, &content.Features.Items[i].Summary, &content.Features.Items[i].Detail)
	}

	for _, field := range fields {
		if err := render(md, field); err != nil {
			return nil, err
		}
	}

	return &content, nil
}

func render(md goldmark.Markdown, field *Markdown) error {
	var buf bytes.Buffer
	if err := md.Convert([]byte(field.Source), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	// goldmark escapes raw HTML by default, so the output is safe to embed.
	field.HTML = template.HTML(strings.TrimSpace(buf.String()))
	return nil
}
