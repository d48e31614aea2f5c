package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromResponse_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Job Title: "),
				genai.Blob{MIMEType: "image/png"},
				genai.Text("Chemist"),
			}},
		}},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Job Title: Chemist", text)
}

func TestExtractTextFromResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		message string
	}{
		{"nil response", nil, "no candidates"},
		{"no candidates", &genai.GenerateContentResponse{}, "no candidates"},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			message: "prompt blocked",
		},
		{
			name:    "empty content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			message: "no content",
		},
		{
			name: "no text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []genai.Part{genai.Blob{}}},
			}}},
			message: "no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
