// Package housestyle describes a company's job advert house style: its name,
// section headers, writing guidelines and mandatory closing line.
package housestyle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jonathan/advert-generator/internal/headers"
	"github.com/jonathan/advert-generator/internal/llm"
	"github.com/jonathan/advert-generator/internal/schemas"
	rootschemas "github.com/jonathan/advert-generator/schemas"
)

// DefaultClosingLine ends every advert.
const DefaultClosingLine = "Please press Apply to submit your application."

// Style is a company house style.
type Style struct {
	Company      string        `json:"company" yaml:"company"`
	ClosingLine  string        `json:"closing_line" yaml:"closing_line"`
	Headers      []string      `json:"headers" yaml:"headers"`
	Guidelines   []string      `json:"guidelines,omitempty" yaml:"guidelines,omitempty"`
	AvoidPhrases []string      `json:"avoid_phrases,omitempty" yaml:"avoid_phrases,omitempty"`
	ModelTier    llm.ModelTier `json:"model_tier,omitempty" yaml:"model_tier,omitempty"`
}

// Default returns the Neogen house style.
func Default() Style {
	return Style{
		Company:     "Neogen",
		ClosingLine: DefaultClosingLine,
		Headers:     headers.DefaultNames(),
		Guidelines: []string{
			"Open with a short paragraph that sells the role and the team.",
			"Keep duties and requirements as concise bullet points.",
			"Use inclusive, gender-neutral language.",
			"Write in British English.",
		},
		AvoidPhrases: []string{"rockstar", "ninja", "guru", "work hard, play hard"},
		ModelTier:    llm.TierStandard,
	}
}

// HeaderSet builds the immutable header set for the style.
func (s Style) HeaderSet() (*headers.Set, error) {
	return headers.NewSet(s.Headers...)
}

// Tier returns the model tier, defaulting to standard.
func (s Style) Tier() llm.ModelTier {
	if s.ModelTier == "" {
		return llm.TierStandard
	}
	return s.ModelTier
}

// FilePrefix is the company name reduced to a lowercase file-name-safe token,
// e.g. "neogen" for the default style.
func (s Style) FilePrefix() string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(s.Company)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && sb.Len() > 0:
			sb.WriteRune('_')
			lastUnderscore = true
		}
	}
	prefix := strings.TrimSuffix(sb.String(), "_")
	if prefix == "" {
		return "company"
	}
	return prefix
}

// DownloadName is the default file name for a single generated advert.
func (s Style) DownloadName(ext string) string {
	return fmt.Sprintf("%s_job_advert.%s", s.FilePrefix(), strings.TrimPrefix(ext, "."))
}

// Load reads a house style from a JSON or YAML file and validates it against
// the house style schema. Fields missing from the file keep their defaults.
func Load(path string) (Style, error) {
	if path == "" {
		return Style{}, fmt.Errorf("house style path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("failed to read house style file %s: %w", path, err)
	}

	return Parse(data, filepath.Ext(path))
}

// Parse decodes a house style document. ext selects YAML (".yaml", ".yml")
// or JSON (anything else).
func Parse(data []byte, ext string) (Style, error) {
	jsonData := data
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return Style{}, fmt.Errorf("failed to parse house style YAML: %w", err)
		}
		jsonData = converted
	}

	if err := schemas.ValidateEmbedded(rootschemas.HouseStyle, jsonData); err != nil {
		return Style{}, fmt.Errorf("invalid house style: %w", err)
	}

	style := Default()
	style.Guidelines = nil
	style.AvoidPhrases = nil
	if err := json.Unmarshal(jsonData, &style); err != nil {
		return Style{}, fmt.Errorf("failed to parse house style JSON: %w", err)
	}

	if _, err := style.HeaderSet(); err != nil {
		return Style{}, fmt.Errorf("invalid house style headers: %w", err)
	}

	return style, nil
}
