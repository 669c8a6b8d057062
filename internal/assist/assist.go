// Package assist drafts narrative RFP sections with a text generator.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/prompts"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
)

// Section is a document field that AI assist can draft
type Section string

const (
	// SectionIntroduction drafts section 1
	SectionIntroduction Section = "introduction"
	// SectionScopeOfWork drafts the narrative part of section 3
	SectionScopeOfWork Section = "scopeOfWork"
)

// Sections lists the sections AI assist supports
var Sections = []Section{SectionIntroduction, SectionScopeOfWork}

// ErrUnknownSection is returned for a section AI assist cannot draft
var ErrUnknownSection = errors.New("unknown assist section")

// ParseSection converts a section name into a Section
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
}

// Field returns the document field the section's draft is written to
func (s Section) Field() types.FieldPath {
	return types.FieldPath(s)
}

// Prompt builds the generation prompt for a section of doc
func Prompt(doc types.RFP, section Section) (string, error) {
	if _, err := ParseSection(string(section)); err != nil {
		return "", err
	}
	return prompts.Render(prompts.RFPFile, string(section), map[string]string{
		"CompanyName": doc.CompanyName,
		"ProjectName": doc.ProjectName,
	})
}

// Assistant drafts sections using a Generator
type Assistant struct {
	gen llm.Generator
}

// New creates an Assistant
func New(gen llm.Generator) *Assistant {
	return &Assistant{gen: gen}
}

// Draft generates text for a section without touching the document
func (a *Assistant) Draft(ctx context.Context, doc types.RFP, section Section) (string, error) {
	prompt, err := Prompt(doc, section)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[assist] %s draft failed after %v: %v", section, time.Since(start), err)
		return "", err
	}
	log.Printf("[assist] %s drafted in %v (%d chars)", section, time.Since(start), len(text))
	return text, nil
}

// Apply writes a draft into the section's field
func Apply(doc types.RFP, section Section, text string) (types.RFP, error) {
	return types.SetField(doc, section.Field(), text)
}

// Fill drafts a section and writes it into a copy of doc. On failure doc is
// returned unchanged.
func (a *Assistant) Fill(ctx context.Context, doc types.RFP, section Section) (types.RFP, error) {
	text, err := a.Draft(ctx, doc, section)
	if err != nil {
		return doc, err
	}
	return Apply(doc, section, text)
}
