// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"
)

// advicePromptTmpl renders the analysis context into the prompt sent to
// the chat model. The model sees ranked sites with their financial and
// policy headline figures and responds with a deployment assessment.
var advicePromptTmpl = template.Must(template.New("advice").Parse(`You are an expert chemical engineer and financial analyst specializing in industrial carbon capture and utilization siting.

Project: {{.ProjectType}}, target capacity {{printf "%.0f" .TargetCapacityTPY}} tons CO2 per year.

Ranked candidate sites:
{{range .Sites}}{{.Rank}}. {{.Name}} ({{.Country}}) — composite score {{printf "%.1f" .Composite}}/100
   NPV {{printf "%.0f" .Finance.NPV}} EUR, IRR {{printf "%.1f" .Finance.IRRPercent}}%, payback {{printf "%.1f" .Finance.PaybackYears}} years
   Policy readiness {{printf "%.0f" .Policy.ReadinessScore}}/100 ({{.Policy.RiskLevel}} risk), ETS savings {{printf "%.0f" .Policy.AnnualETSSavingsEUR}} EUR/year
{{end}}
Give a concise deployment assessment: which site to pick, the main financial and regulatory considerations, and what to validate before committing. Plain prose, no markdown headings.`))

// groqAPIBase is the Groq OpenAI-compatible chat completions endpoint.
// Package-level var for test substitution.
var groqAPIBase = "https://api.groq.com/openai/v1/chat/completions"

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "llama-3.1-8b-instant"

// GroqBackend calls the Groq chat completions API for the advisory
// narrative.
type GroqBackend struct {
	APIKey string
	Model  string
	Client *http.Client
}

// groqRequest is the request body for the chat completions API.
type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// groqMessage is a single message in the chat conversation.
type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// groqResponse is the response body from the chat completions API.
type groqResponse struct {
	Choices []groqChoice `json:"choices"`
}

type groqChoice struct {
	Message groqMessage `json:"message"`
}

// Advise renders the analysis context into a prompt and returns the
// model's assessment.
func (g *GroqBackend) Advise(ctx context.Context, req Request) (string, error) {
	prompt, err := renderPrompt(req)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := g.Model
	if model == "" {
		model = DefaultModel
	}

	reqBody := groqRequest{
		Model: model,
		Messages: []groqMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   1024,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIBase, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("calling Groq API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Groq API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp groqResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Groq response: %w", err)
	}

	if len(gResp.Choices) == 0 || gResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("Groq API returned empty content")
	}

	return gResp.Choices[0].Message.Content, nil
}

// renderPrompt executes the advice prompt template with the request.
func renderPrompt(req Request) (string, error) {
	var buf bytes.Buffer
	if err := advicePromptTmpl.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
