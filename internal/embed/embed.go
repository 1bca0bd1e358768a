// Package embed turns query text into embedding vectors for semantic search.
package embed

import (
	"context"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/zhubert/erwindb/internal/errors"
	"github.com/zhubert/erwindb/internal/logger"
	"github.com/zhubert/erwindb/internal/search"
)

// DefaultModel is the Gemini embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// APIKeyEnv is consulted when no API key is configured.
const APIKeyEnv = "GEMINI_API_KEY"

// Options selects the embedding provider.
type Options struct {
	APIKey string
	Model  string
	// Dimensions truncates the output vector; it must match the archive's
	// stored embeddings. Zero keeps the model's native size.
	Dimensions int
}

// contentEmbedder is the subset of genai.Models used here.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Gemini embeds text with the Gemini API.
type Gemini struct {
	models     contentEmbedder
	model      string
	dimensions int
}

var (
	_ search.Embedder = (*Gemini)(nil)
	_ search.Embedder = Unavailable{}
)

// New returns a Gemini embedder, or Unavailable when no API key is set in
// opts or the environment.
func New(ctx context.Context, opts Options) (search.Embedder, error) {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv(APIKeyEnv)
	}
	if strings.TrimSpace(key) == "" {
		return Unavailable{Reason: "no Gemini API key; set " + APIKeyEnv + " or embedding.api_key"}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.EmbeddingFailed(modelOrDefault(opts.Model), err)
	}
	return newGemini(client.Models, opts), nil
}

func newGemini(models contentEmbedder, opts Options) *Gemini {
	return &Gemini{
		models:     models,
		model:      modelOrDefault(opts.Model),
		dimensions: opts.Dimensions,
	}
}

func modelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}

// Embed returns the embedding of text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	cfg := &genai.EmbedContentConfig{TaskType: "RETRIEVAL_QUERY"}
	if g.dimensions > 0 {
		d := int32(g.dimensions)
		cfg.OutputDimensionality = &d
	}

	log := logger.WithComponent("embed")
	log.Debug("embedding query", "model", g.model, "chars", len(text))

	resp, err := g.models.EmbedContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		log.Warn("embedding failed", "model", g.model, "error", err)
		return nil, errors.EmbeddingFailed(g.model, err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.E(errors.Op("embed.Embed"), errors.KindEmbedding, "model returned no embedding")
	}

	values := resp.Embeddings[0].Values
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out, nil
}

// Unavailable is the embedder used when semantic search is not configured.
type Unavailable struct {
	Reason string
}

// Embed always fails with a KindConfig error.
func (u Unavailable) Embed(ctx context.Context, text string) ([]float64, error) {
	return nil, errors.EmbeddingUnavailable(u.Reason)
}

// Available reports whether emb can produce vectors.
func Available(emb search.Embedder) bool {
	if emb == nil {
		return false
	}
	_, unavailable := emb.(Unavailable)
	return !unavailable
}
