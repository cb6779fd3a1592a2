package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"inkserie-app/internal/log"
)

// ErrGeneration covers both transport failures against the generation model
// and replies that do not conform to the expected output schema.
var ErrGeneration = errors.New("generation failed")

// Client talks to a hosted generation model over its REST surface.
// One request, one reply; no retries (a failed generation is terminal for
// that user action).
type Client struct {
	http  *resty.Client
	model string
}

func NewClient(baseURL, apiKey, model string) *Client {
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetQueryParam("key", apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http, model: model}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// generate sends the prompt parts and returns the raw JSON text of the first
// candidate reply.
func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	var req generateRequest
	req.Contents = append(req.Contents, content{Parts: parts})
	req.GenerationConfig.ResponseMimeType = "application/json"

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&req).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		log.Logger.Warn().Str("model", c.model).Str("status", resp.Status()).Msg("generation request rejected")
		return "", fmt.Errorf("%w: %s", ErrGeneration, msg)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty reply from model", ErrGeneration)
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty reply from model", ErrGeneration)
	}
	return text, nil
}

// parseDataURI splits a "data:<mime>;base64,<data>" string into its mime
// type and base64 payload.
func parseDataURI(s string) (mime string, data string, err error) {
	if !strings.HasPrefix(s, "data:") {
		return "", "", fmt.Errorf("image must be a data URI")
	}
	rest := strings.TrimPrefix(s, "data:")
	idx := strings.Index(rest, ";base64,")
	if idx <= 0 {
		return "", "", fmt.Errorf("image data URI must be base64 encoded")
	}
	mime = rest[:idx]
	data = rest[idx+len(";base64,"):]
	if data == "" {
		return "", "", fmt.Errorf("image data URI has no payload")
	}
	return mime, data, nil
}
