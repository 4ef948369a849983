package services

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foundlyhq/foundly-backend/internal/config"
	"github.com/foundlyhq/foundly-backend/internal/models"
)

// AIService polishes listing descriptions and suggests a category. Without
// an API key (or on any upstream failure) it falls back to a keyword
// heuristic so the listing flow never blocks on the provider.
type AIService struct {
	apiKey  string
	model   string
	timeout time.Duration
}

func NewAIService(cfg *config.Config) *AIService {
	return &AIService{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.OpenAIModel,
		timeout: cfg.AITimeout,
	}
}

type openAIChatRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type listingSuggestion struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Enhance returns a polished description and a category suggestion for the
// given draft text.
func (s *AIService) Enhance(input string) (description, category string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "Other"
	}
	if s.apiKey == "" {
		return input, s.fallbackCategory(input)
	}

	reqBody := openAIChatRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{Role: "system", Content: "You help write lost-and-found listings. Given a draft item description, respond with JSON only (no markdown, no code fences): {\"description\": \"clear, search-friendly 1-2 sentence description\", \"category\": one of [\"Electronics\",\"Documents\",\"Jewelry\",\"Clothing\",\"Bags\",\"Keys\",\"Pets\",\"Other\"]}."},
			{Role: "user", Content: input},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return input, s.fallbackCategory(input)
	}

	req, err := http.NewRequest("POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return input, s.fallbackCategory(input)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	client := &http.Client{Timeout: s.timeout}
	resp, err := client.Do(req)
	if err != nil {
		slog.Error("listing enhancement request failed", "error", err)
		return input, s.fallbackCategory(input)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return input, s.fallbackCategory(input)
	}

	var chatResp openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil || len(chatResp.Choices) == 0 {
		return input, s.fallbackCategory(input)
	}

	var suggestion listingSuggestion
	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return input, s.fallbackCategory(input)
	}
	if suggestion.Description == "" {
		suggestion.Description = input
	}
	if !models.ValidCategory(suggestion.Category) {
		suggestion.Category = s.fallbackCategory(input)
	}
	return suggestion.Description, suggestion.Category
}

var categoryKeywords = map[string][]string{
	"Electronics": {"phone", "iphone", "android", "laptop", "macbook", "tablet", "ipad", "camera", "headphone", "earbud", "airpod", "charger", "watch", "smartwatch", "kindle", "console"},
	"Documents":   {"passport", "license", "licence", "id card", "aadhaar", "certificate", "document", "papers", "visa", "card"},
	"Jewelry":     {"ring", "necklace", "bracelet", "earring", "chain", "pendant", "gold", "silver", "jewel"},
	"Clothing":    {"jacket", "coat", "sweater", "hoodie", "scarf", "shirt", "cap", "hat", "glove", "shoe"},
	"Bags":        {"bag", "backpack", "wallet", "purse", "handbag", "suitcase", "luggage", "pouch"},
	"Keys":        {"key", "keychain", "keyring", "fob"},
	"Pets":        {"dog", "cat", "puppy", "kitten", "parrot", "bird", "pet", "rabbit"},
}

func (s *AIService) fallbackCategory(input string) string {
	lower := strings.ToLower(input)
	best := "Other"
	bestHits := 0
	for _, cat := range models.ItemCategories {
		hits := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best = cat
			bestHits = hits
		}
	}
	return best
}
