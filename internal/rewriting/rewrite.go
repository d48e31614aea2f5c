// Package rewriting turns job descriptions into house-style adverts using a
// language model.
package rewriting

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/advert-generator/internal/housestyle"
	"github.com/jonathan/advert-generator/internal/llm"
	"github.com/jonathan/advert-generator/internal/prompts"
	"github.com/rs/zerolog/log"
)

const promptFile = "advert.json"

// Generator writes adverts in a house style.
type Generator struct {
	client llm.Client
	style  housestyle.Style
}

// NewGenerator returns a Generator that calls client with prompts built from
// style.
func NewGenerator(client llm.Client, style housestyle.Style) *Generator {
	return &Generator{client: client, style: style}
}

// Style returns the house style used by the generator.
func (g *Generator) Style() housestyle.Style {
	return g.style
}

// Generate rewrites a job description as an advert. The returned text is the
// raw model output with any wrapping code fence removed and the closing line
// guaranteed.
func (g *Generator) Generate(ctx context.Context, jobDescription string) (string, error) {
	if g.client == nil {
		return "", &APICallError{Message: "no language model client configured", Cause: llm.ErrMissingAPIKey}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return "", &APICallError{Message: "job description is empty"}
	}

	tier := g.style.Tier()
	prompt := BuildPrompt(g.style, jobDescription)

	response, err := g.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &APICallError{
			Message: "failed to generate advert with " + g.client.GetModel(tier),
			Cause:   err,
		}
	}

	advert := llm.StripCodeFence(response)
	if advert == "" {
		return "", &EmptyResponseError{Model: g.client.GetModel(tier)}
	}

	if report := g.style.Check(advert); !report.OK() {
		log.Ctx(ctx).Warn().
			Bool("missing_closing_line", report.MissingClosingLine).
			Strs("avoided_phrases", report.AvoidedPhrases).
			Msg("generated advert breaks house style")
	}

	return g.style.EnsureClosingLine(advert), nil
}

// SystemInstruction is the system prompt sent with every advert request.
func SystemInstruction() string {
	return prompts.MustGet(promptFile, "system")
}

// BuildPrompt assembles the advert prompt for a style and job description.
func BuildPrompt(style housestyle.Style, jobDescription string) string {
	data := map[string]string{
		"Company":        style.Company,
		"ClosingLine":    style.ClosingLine,
		"JobDescription": strings.TrimSpace(jobDescription),
	}

	var sb strings.Builder
	sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-intro"), data))
	sb.WriteString("\n\n")
	sb.WriteString(prompts.MustGet(promptFile, "advert-format"))

	if len(style.Headers) > 0 {
		headerLines := make([]string, len(style.Headers))
		for i, h := range style.Headers {
			headerLines[i] = "- " + strings.TrimSuffix(strings.TrimSpace(h), ":") + ":"
		}
		data["Headers"] = strings.Join(headerLines, "\n")
		sb.WriteString("\n\n")
		sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-headers"), data))
	}

	if len(style.Guidelines) > 0 {
		data["Guidelines"] = "- " + strings.Join(style.Guidelines, "\n- ")
		sb.WriteString("\n\n")
		sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-guidelines"), data))
	}

	if len(style.AvoidPhrases) > 0 {
		data["Avoid"] = strings.Join(style.AvoidPhrases, ", ")
		sb.WriteString("\n\n")
		sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-avoid"), data))
	}

	if style.ClosingLine != "" {
		sb.WriteString("\n")
		sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-closing"), data))
	}

	sb.WriteString("\n\n")
	sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "advert-input"), data))
	sb.WriteString("\n")

	return sb.String()
}
