package services

import (
	"testing"
	"time"

	"github.com/foundlyhq/foundly-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func offlineAI() *AIService {
	return NewAIService(&config.Config{OpenAIModel: "gpt-4o-mini", AITimeout: time.Second})
}

func TestEnhanceWithoutKeyKeepsDescription(t *testing.T) {
	svc := offlineAI()
	desc, cat := svc.Enhance("  black leather wallet, slightly worn ")
	assert.Equal(t, "black leather wallet, slightly worn", desc)
	assert.Equal(t, "Bags", cat)
}

func TestEnhanceEmptyInput(t *testing.T) {
	svc := offlineAI()
	desc, cat := svc.Enhance("   ")
	assert.Empty(t, desc)
	assert.Equal(t, "Other", cat)
}

func TestFallbackCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"lost my iphone 15 with a blue charger", "Electronics"},
		{"small brown puppy, answers to Max", "Pets"},
		{"bunch of keys on a red keychain", "Keys"},
		{"silver necklace with a heart pendant", "Jewelry"},
		{"something unidentifiable", "Other"},
	}
	svc := offlineAI()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.fallbackCategory(tt.input))
		})
	}
}
