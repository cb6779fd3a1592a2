package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModel returns an httptest server that answers every generateContent
// call with the given JSON text as the single candidate part.
func fakeModel(t *testing.T, replyJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		require.NotEmpty(t, req.Contents[0].Parts)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": replyJSON}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

func TestAnalyzeImageReturnsAllFields(t *testing.T) {
	srv := fakeModel(t, `{
		"theme": "floral",
		"style": "fineline",
		"suggestedName": "Peônia Noturna",
		"description": "A delicate peony in fine lines.",
		"seoTags": ["floral", "fineline"],
		"instagramCaption": "Peônia em fineline ✨",
		"significado_literal": "A peony flower",
		"significado_subjetivo": "Renewal and quiet strength",
		"cores_usadas": ["preto"],
		"elementos_presentes": ["peônia", "folhas"],
		"tom_emocional": "sereno",
		"local_sugerido": "antebraço",
		"simbolismo": "prosperity in eastern tradition",
		"referencia_cultural": "japanese irezumi motifs"
	}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	out, err := c.AnalyzeImage(context.Background(), pngDataURI)
	require.NoError(t, err)

	assert.Equal(t, "floral", out.Theme)
	assert.Equal(t, "fineline", out.Style)
	assert.Equal(t, "Peônia Noturna", out.SuggestedName)
	assert.Equal(t, []string{"floral", "fineline"}, out.SeoTags)
	assert.Equal(t, "antebraço", out.LocalSugerido)
	assert.Equal(t, "sereno", out.TomEmocional)
}

func TestAnalyzeImageDefaultsSeoTagsToEmptySlice(t *testing.T) {
	srv := fakeModel(t, `{"theme":"geometric","style":"blackwork","suggestedName":"Hex"}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	out, err := c.AnalyzeImage(context.Background(), pngDataURI)
	require.NoError(t, err)
	assert.NotNil(t, out.SeoTags)
	assert.Empty(t, out.SeoTags)
}

func TestAnalyzeImageRejectsNonDataURI(t *testing.T) {
	c := NewClient("http://localhost:1", "test-key", "test-model")

	_, err := c.AnalyzeImage(context.Background(), "https://example.com/tattoo.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestAnalyzeImageRejectsIncompleteReply(t *testing.T) {
	srv := fakeModel(t, `{"theme":"floral"}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	_, err := c.AnalyzeImage(context.Background(), pngDataURI)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestAnalyzeImageRejectsMalformedReply(t *testing.T) {
	srv := fakeModel(t, `not json at all`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	_, err := c.AnalyzeImage(context.Background(), pngDataURI)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestSuggestSerieMetadata(t *testing.T) {
	srv := fakeModel(t, `{
		"suggestedTitle": "Flora Eterna",
		"improvedDescription": "Twenty botanical designs for fineline lovers.",
		"suggestedStructure": "Module 1: Peonies. Module 2: Wildflowers.",
		"salesPitch": "Own the garden."
	}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	out, err := c.SuggestSerieMetadata(context.Background(), SuggestionsInput{
		Name:           "Floral Set",
		Price:          49.9,
		Description:    "flower tattoos",
		TargetAudience: "tatuadores fineline",
	})
	require.NoError(t, err)
	assert.Equal(t, "Flora Eterna", out.SuggestedTitle)
	assert.NotEmpty(t, out.SuggestedStructure)
}

func TestSuggestSerieMetadataRequiresName(t *testing.T) {
	c := NewClient("http://localhost:1", "test-key", "test-model")

	_, err := c.SuggestSerieMetadata(context.Background(), SuggestionsInput{Name: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestCompileSerie(t *testing.T) {
	srv := fakeModel(t, `{
		"pdfDataUri": "data:application/pdf;base64,JVBERi0=",
		"webVersionUrl": "https://example.com/flora-eterna",
		"miniSiteHtml": "<html><body>Flora Eterna</body></html>",
		"promotionalFiles": ["https://example.com/banner.png"],
		"marketingCopies": "The definitive botanical flash collection.",
		"coverArtDataUri": "data:image/png;base64,iVBORw0KGgo=",
		"mockups3D": []
	}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	out, err := c.CompileSerie(context.Background(), CompilationInput{
		Name:           "Flora Eterna",
		Description:    "botanical flash",
		TargetAudience: "fineline artists",
		Modules: []CompilationModule{
			{Name: "Peonies", SubDescription: "soft petals", Images: []string{"https://img/1.png"}},
			{Name: "Wildflowers", SubDescription: "field studies", Images: []string{"https://img/2.png"}},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.MarketingCopies)
	assert.NotEmpty(t, out.WebVersionURL)
	assert.NotNil(t, out.Mockups3D)
}

func TestCompileSerieRejectsReplyWithoutMarketingCopy(t *testing.T) {
	srv := fakeModel(t, `{"webVersionUrl":"https://example.com/x"}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	_, err := c.CompileSerie(context.Background(), CompilationInput{Name: "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestGenerateSurfacesModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exhausted"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")

	_, err := c.AnalyzeImage(context.Background(), pngDataURI)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestParseDataURI(t *testing.T) {
	mime, data, err := parseDataURI("data:image/jpeg;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, "aGVsbG8=", data)

	_, _, err = parseDataURI("image/jpeg;aGVsbG8=")
	assert.Error(t, err)

	_, _, err = parseDataURI("data:image/jpeg;base64,")
	assert.Error(t, err)
}
