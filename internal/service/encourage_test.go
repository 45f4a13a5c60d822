package service

import (
	"context"
	"testing"

	"glimmer/internal/config"
)

func TestWantsEncouragement(t *testing.T) {
	for _, mood := range []string{MoodThinking, MoodTired, MoodSad} {
		if !WantsEncouragement(mood) {
			t.Fatalf("mood %q should get an encouragement", mood)
		}
	}
	for _, mood := range []string{"positive", "", "开心"} {
		if WantsEncouragement(mood) {
			t.Fatalf("mood %q should not get an encouragement", mood)
		}
	}
}

func TestDefaultEncouragementPerMood(t *testing.T) {
	seen := map[string]bool{}
	for _, mood := range []string{MoodThinking, MoodTired, MoodSad, "其他"} {
		line := DefaultEncouragement(mood)
		if line == "" {
			t.Fatalf("mood %q: empty fallback", mood)
		}
		if seen[line] {
			t.Fatalf("mood %q: fallback reused across moods: %q", mood, line)
		}
		seen[line] = true
	}
}

func TestGenerateWithoutModelUsesFallback(t *testing.T) {
	s := NewEncourageService(config.LLMConfig{})
	got := s.Generate(context.Background(), MoodTired)
	if got != DefaultEncouragement(MoodTired) {
		t.Fatalf("no model configured must fall back, got %q", got)
	}
}
