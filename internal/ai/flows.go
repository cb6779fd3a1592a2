package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ---------- serie suggestions ----------

type SuggestionsInput struct {
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
	TargetAudience string  `json:"targetAudience"`
}

type SuggestionsOutput struct {
	SuggestedTitle      string `json:"suggestedTitle"`
	ImprovedDescription string `json:"improvedDescription"`
	SuggestedStructure  string `json:"suggestedStructure"`
	SalesPitch          string `json:"salesPitch"`
}

// SuggestSerieMetadata turns a short brief into a better title, description,
// module structure and sales pitch for a new collection.
func (c *Client) SuggestSerieMetadata(ctx context.Context, in SuggestionsInput) (*SuggestionsOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", ErrGeneration)
	}

	prompt := fmt.Sprintf(`You are an AI assistant helping a tattoo artist create a sellable collection of designs.
Based on the following information, suggest a better title, improve the description, suggest a base structure with multiple module ideas, and write a sales pitch.

Collection Name: %s
Price: %.2f
Description: %s
Target Audience: %s

Respond with a single JSON object with exactly these string fields: "suggestedTitle", "improvedDescription", "suggestedStructure", "salesPitch".`,
		in.Name, in.Price, in.Description, in.TargetAudience)

	raw, err := c.generate(ctx, []part{{Text: prompt}})
	if err != nil {
		return nil, err
	}

	var out SuggestionsOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: malformed suggestions reply: %v", ErrGeneration, err)
	}
	if out.SuggestedTitle == "" || out.ImprovedDescription == "" {
		return nil, fmt.Errorf("%w: suggestions reply missing required fields", ErrGeneration)
	}
	return &out, nil
}

// ---------- image analysis ----------

type ImageAnalysis struct {
	Theme                string   `json:"theme"`
	Style                string   `json:"style"`
	SuggestedName        string   `json:"suggestedName"`
	Description          string   `json:"description"`
	SeoTags              []string `json:"seoTags"`
	InstagramCaption     string   `json:"instagramCaption"`
	SignificadoLiteral   string   `json:"significado_literal"`
	SignificadoSubjetivo string   `json:"significado_subjetivo"`
	CoresUsadas          []string `json:"cores_usadas"`
	ElementosPresentes   []string `json:"elementos_presentes"`
	TomEmocional         string   `json:"tom_emocional"`
	LocalSugerido        string   `json:"local_sugerido"`
	Simbolismo           string   `json:"simbolismo"`
	ReferenciaCultural   string   `json:"referencia_cultural"`
}

const analysisPrompt = `You are an AI assistant specializing in tattoo image analysis and content generation.

Analyze the provided tattoo image and respond with a single JSON object with exactly these fields:
- "theme": the main theme of the tattoo (e.g. floral, geometric, portrait)
- "style": the tattoo style (e.g. realism, minimalist, traditional)
- "suggestedName": a catchy, relevant name for the tattoo
- "description": a detailed description highlighting key features
- "seoTags": an array of SEO tag strings
- "instagramCaption": an engaging Instagram caption
- "significado_literal": what the tattoo literally depicts
- "significado_subjetivo": what it could subjectively represent
- "cores_usadas": array of the main colors present
- "elementos_presentes": array of the key visual elements
- "tom_emocional": the emotional tone (e.g. melancholic, powerful, joyful)
- "local_sugerido": a suggested body placement
- "simbolismo": symbolism associated with the elements
- "referencia_cultural": any cultural references present`

// AnalyzeImage classifies a tattoo image (passed as a base64 data URI) and
// generates the structured metadata persisted on a Tatuagem record.
func (c *Client) AnalyzeImage(ctx context.Context, imageDataURI string) (*ImageAnalysis, error) {
	mime, data, err := parseDataURI(imageDataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	raw, err := c.generate(ctx, []part{
		{Text: analysisPrompt},
		{InlineData: &inlineData{MimeType: mime, Data: data}},
	})
	if err != nil {
		return nil, err
	}

	var out ImageAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis reply: %v", ErrGeneration, err)
	}
	if out.Theme == "" || out.Style == "" || out.SuggestedName == "" {
		return nil, fmt.Errorf("%w: analysis reply missing theme/style/name", ErrGeneration)
	}
	if out.SeoTags == nil {
		out.SeoTags = []string{}
	}
	return &out, nil
}

// ---------- collection compilation ----------

type CompilationModule struct {
	Name           string   `json:"name"`
	SubDescription string   `json:"subDescription"`
	Images         []string `json:"images"`
}

type CompilationInput struct {
	Name           string              `json:"aiBookName"`
	Description    string              `json:"description"`
	TargetAudience string              `json:"targetAudience"`
	Modules        []CompilationModule `json:"modules"`
}

type CompilationOutput struct {
	PDFDataURI       string   `json:"pdfDataUri"`
	WebVersionURL    string   `json:"webVersionUrl"`
	MiniSiteHTML     string   `json:"miniSiteHtml"`
	PromotionalFiles []string `json:"promotionalFiles"`
	MarketingCopies  string   `json:"marketingCopies"`
	CoverArtDataURI  string   `json:"coverArtDataUri"`
	Mockups3D        []string `json:"mockups3D"`
}

// CompileSerie compiles a whole collection into its marketing assets: PDF,
// web version, mini-site HTML, promotional files, marketing copy, cover art
// and 3D mockups.
func (c *Client) CompileSerie(ctx context.Context, in CompilationInput) (*CompilationOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", ErrGeneration)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an AI assistant that compiles tattoo design collections into marketing assets.

Collection Name: %s
Description: %s
Target Audience: %s
Modules:
`, in.Name, in.Description, in.TargetAudience)
	for _, m := range in.Modules {
		fmt.Fprintf(&b, "- %s: %s (%d images)\n", m.Name, m.SubDescription, len(m.Images))
	}
	b.WriteString(`
Respond with a single JSON object with exactly these fields:
"pdfDataUri" (string), "webVersionUrl" (string), "miniSiteHtml" (string),
"promotionalFiles" (array of strings), "marketingCopies" (string),
"coverArtDataUri" (string), "mockups3D" (array of strings).`)

	raw, err := c.generate(ctx, []part{{Text: b.String()}})
	if err != nil {
		return nil, err
	}

	var out CompilationOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: malformed compilation reply: %v", ErrGeneration, err)
	}
	if out.MarketingCopies == "" || out.WebVersionURL == "" {
		return nil, fmt.Errorf("%w: compilation reply missing marketing copy or web version", ErrGeneration)
	}
	if out.PromotionalFiles == nil {
		out.PromotionalFiles = []string{}
	}
	if out.Mockups3D == nil {
		out.Mockups3D = []string{}
	}
	return &out, nil
}
