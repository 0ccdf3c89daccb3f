package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	openai "github.com/sashabaranov/go-openai"

	"barnabus-backend/internal/config"
	"barnabus-backend/internal/images"
	"barnabus-backend/internal/pexels"
	"barnabus-backend/internal/prompt"
	"barnabus-backend/internal/store"
	"barnabus-backend/internal/stream"
	"barnabus-backend/internal/types"
)

type Server struct {
	router   *chi.Mux
	client   *openai.Client
	cfg      config.Config
	resolver *images.Resolver
	pexels   *pexels.Client
	prompts  *prompt.Generator
}

func NewServer(cfg config.Config) (*Server, error) {
	client := openai.NewClient(cfg.OpenAIAPIKey)
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	spec, err := prompt.LoadSpec(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt spec: %w", err)
	}

	cache := store.NewImageCache(cfg.ScrapeCacheTTL)
	scraper := images.NewScraper(cfg.ScrapeTimeout, cache)

	s := &Server{
		router:   r,
		client:   client,
		cfg:      cfg,
		resolver: images.NewResolver(scraper),
		pexels:   pexels.NewClient(cfg.PexelsAPIKey),
		prompts:  prompt.NewGenerator(spec, client, cfg.PromptModel),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/chat", s.handleChat)
	s.router.Post("/enhance-products", s.handleEnhanceProducts)
	s.router.Get("/image-proxy", s.handleImageProxy)
	s.router.Get("/get-product-image", s.handleProductImage)
	s.router.Get("/generate-prompts", s.handleGeneratePrompts)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleChat forwards the conversation to the model and streams raw
// token text straight through to the client. The client renders the
// partial buffer; the server only decodes the final text for
// diagnostics.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		s.writeError(w, http.StatusBadRequest, "messages are required")
		return
	}
	if s.cfg.OpenAIAPIKey == "" {
		s.writeError(w, http.StatusInternalServerError, "language model provider is not configured")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	completion, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.prompts.Temperature(),
		MaxTokens:   s.prompts.MaxTokens(),
		Messages:    s.convertMessages(req.Messages),
		Stream:      true,
	})
	if err != nil {
		log.Println("openai stream error:", err)
		s.writeError(w, http.StatusBadGateway, "chat stream init failed")
		return
	}
	defer completion.Close()

	var builder strings.Builder
	for {
		response, err := completion.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Println("stream recv error:", err)
			break
		}
		if len(response.Choices) == 0 {
			continue
		}
		chunk := response.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		builder.WriteString(chunk)
		_, _ = w.Write([]byte(chunk))
		flusher.Flush()
	}

	final := builder.String()
	if strings.TrimSpace(final) == "" {
		return
	}
	// A malformed final payload is recoverable for the client (the turn
	// just renders nothing structured), but worth surfacing in logs.
	if _, err := stream.ParsePayload(final); err != nil {
		log.Printf("[chat] malformed final payload: %v", err)
	}
}

func (s *Server) convertMessages(msgs []types.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: s.prompts.System(),
	})
	for _, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

// handleEnhanceProducts replaces each product's image with a resolved
// one (scraped or curated), keeping the original under originalImage.
func (s *Server) handleEnhanceProducts(w http.ResponseWriter, r *http.Request) {
	var req types.EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Products == nil {
		s.writeError(w, http.StatusBadRequest, "products must be an array")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	enhanced := s.resolver.EnhanceProducts(ctx, req.Products)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.EnhanceResponse{Products: enhanced})
}

// handleProductImage is a passthrough to the image-search provider.
func (s *Server) handleProductImage(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}
	if !s.pexels.Configured() {
		s.writeError(w, http.StatusInternalServerError, "image search provider is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	imageURL, err := s.pexels.SearchOne(ctx, query)
	if err != nil {
		log.Println("image search error:", err)
		s.writeError(w, http.StatusBadGateway, "failed to fetch image from search provider")
		return
	}
	resp := types.ImageSearchResponse{}
	if imageURL != "" {
		resp.ImageURL = &imageURL
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// handleGeneratePrompts returns four suggested questions. The body is
// always a usable 4-string array; only the status code reveals whether
// generation succeeded or the fixed fallback was served.
func (s *Server) handleGeneratePrompts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	suggestions, err := s.prompts.Suggestions(r.Context())
	if err != nil {
		log.Println("suggestion generation error:", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(s.prompts.Fallbacks())
		return
	}
	_ = json.NewEncoder(w).Encode(suggestions)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
