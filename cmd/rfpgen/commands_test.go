package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/config"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/export"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/rendering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setFlag assigns a package-level flag variable for the duration of a test
func setFlag[T any](t *testing.T, target *T, value T) {
	t.Helper()
	old := *target
	*target = value
	t.Cleanup(func() { *target = old })
}

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

type stubPrinter struct{}

func (stubPrinter) Print(_ context.Context, html string) ([]byte, error) {
	return []byte("%PDF " + html[:9]), nil
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfp.json")
	setFlag(t, &initOutputFile, path)
	setFlag(t, &initCompany, "Acme")
	setFlag(t, &initProject, "Unit 3")
	setFlag(t, &initCapacity, "1500")
	setFlag(t, &initForce, false)

	require.NoError(t, runInit(nil, nil))
	doc, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.CompanyName)
	assert.Equal(t, "1500", doc.CO2CaptureCapacity)
	assert.Len(t, doc.Feedstocks, 13)

	err = runInit(nil, nil)
	assert.ErrorContains(t, err, "already exists")

	setFlag(t, &initForce, true)
	assert.NoError(t, runInit(nil, nil))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, saveDocument(valid, sampleDocument()))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"companyName": 7}`), 0644))

	setFlag(t, &validateSchemaFile, "")
	setFlag(t, &verbose, true)

	setFlag(t, &validateInputFile, valid)
	assert.NoError(t, runValidate(nil, nil))

	setFlag(t, &validateInputFile, invalid)
	err := runValidate(nil, nil)
	assert.ErrorContains(t, err, "1 problem(s)")
}

func TestValidate_ExternalSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "strict.schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["qa"]
	}`), 0644))

	docPath := filepath.Join(dir, "rfp.json")
	require.NoError(t, os.WriteFile(docPath, []byte(`{"companyName":"Acme"}`), 0644))

	setFlag(t, &validateSchemaFile, schemaPath)
	setFlag(t, &validateInputFile, docPath)
	setFlag(t, &verbose, false)
	assert.ErrorContains(t, runValidate(nil, nil), "not a valid RFP document")

	setFlag(t, &validateInputFile, filepath.Join(dir, "rfp.yaml"))
	assert.ErrorContains(t, runValidate(nil, nil), "only supports JSON")
}

func TestRenderTargets(t *testing.T) {
	targets, err := renderTargets("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"preview", "word", "pdf"}, targets)

	targets, err = renderTargets("Word")
	require.NoError(t, err)
	assert.Equal(t, []string{"word"}, targets)

	_, err = renderTargets("docx")
	assert.ErrorContains(t, err, "invalid --view")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "rfp.html"), outputPath("out", "rfp", "preview"))
	assert.Equal(t, filepath.Join("out", "rfp.word.html"), outputPath("out", "rfp", "word"))
	assert.Equal(t, filepath.Join("out", "rfp.pdf"), outputPath("out", "rfp", "pdf"))
}

func TestRenderTarget(t *testing.T) {
	doc := sampleDocument()

	html, err := renderTarget(context.Background(), doc, string(rendering.ViewWord), stubPrinter{})
	require.NoError(t, err)
	assert.Contains(t, string(html), "word-content-area")

	pdf, err := renderTarget(context.Background(), doc, viewPDF, stubPrinter{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF <!DOCTYPE", string(pdf))
}

func TestRender_HTMLViews(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "rfp.json")
	require.NoError(t, saveDocument(in, sampleDocument()))

	setFlag(t, &configPath, "")
	setFlag(t, &renderInputFile, in)
	setFlag(t, &renderOutDir, filepath.Join(dir, "out"))
	setFlag(t, &renderBaseName, "unit3")

	for _, view := range []string{"preview", "word"} {
		setFlag(t, &renderView, view)
		require.NoError(t, runRender(rootCmd, nil))
	}

	preview, err := os.ReadFile(filepath.Join(dir, "out", "unit3.html"))
	require.NoError(t, err)
	assert.Contains(t, string(preview), "Unit 3 Capture")

	_, err = os.Stat(filepath.Join(dir, "out", "unit3.word.html"))
	assert.NoError(t, err)
}

func TestDraftSection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rfp.json")
	setFlag(t, &assistDryRun, false)

	err := draftSection(context.Background(), stubGenerator{text: "A fresh introduction."},
		sampleDocument(), assist.SectionIntroduction, out, true)
	require.NoError(t, err)

	doc, err := loadDocument(out)
	require.NoError(t, err)
	assert.Equal(t, "A fresh introduction.", doc.Introduction)
	assert.Equal(t, "Acme Power", doc.CompanyName)
}

func TestDraftSection_FailureWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rfp.json")
	setFlag(t, &assistDryRun, false)

	err := draftSection(context.Background(), stubGenerator{err: &llm.ConfigError{Message: "API key is required", Cause: llm.ErrNotConfigured}},
		sampleDocument(), assist.SectionScopeOfWork, out, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), llm.MessageNotConfigured)
	assert.True(t, errors.Is(err, llm.ErrNotConfigured))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDraftSection_DryRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rfp.json")
	setFlag(t, &assistDryRun, true)

	require.NoError(t, draftSection(context.Background(), stubGenerator{text: "draft"},
		sampleDocument(), assist.SectionIntroduction, out, false))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rfpgen.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9090, "model": "gemini-2.5-flash"}`), 0644))

	t.Setenv(config.EnvAPIKey, "env-key")
	t.Setenv(config.EnvPort, "7000")
	setFlag(t, &configPath, path)
	setFlag(t, &verbose, true)

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port, "config file wins over the environment")
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, config.DefaultPDFTimeoutSeconds, cfg.PDFTimeoutSeconds)
	assert.True(t, cfg.Verbose)

	cfg.APIKey = ""
	gen := newGenerator(context.Background(), cfg)
	assert.Equal(t, "gemini-2.5-flash", gen.Model())
	assert.ErrorIs(t, gen.Err(), llm.ErrNotConfigured)
}

func TestServerPrinter(t *testing.T) {
	cfg := config.Default()
	cfg.ChromePath = filepath.Join(t.TempDir(), "missing-chrome")
	assert.Nil(t, serverPrinter(cfg), "no browser means no printer")

	bin := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	cfg.ChromePath = bin
	printer := serverPrinter(cfg)
	require.NotNil(t, printer)
	assert.Equal(t, bin, printer.(*export.PDFPrinter).ExecPath)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	setFlag(t, &configPath, filepath.Join(t.TempDir(), "missing.json"))
	_, err := loadSettings()
	assert.ErrorContains(t, err, "failed to read config file")
}
