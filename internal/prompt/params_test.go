package prompt

import (
	"math"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", p.Temperature)
	}
	if p.MaxTokens != 256 {
		t.Errorf("expected max tokens 256, got %d", p.MaxTokens)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestGenerationParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  GenerationParams
		wantErr bool
	}{
		{"lower bounds", GenerationParams{Temperature: 0, MaxTokens: 50}, false},
		{"upper bounds", GenerationParams{Temperature: 1, MaxTokens: 1024}, false},
		{"off-step values accepted", GenerationParams{Temperature: 0.33, MaxTokens: 77}, false},
		{"temperature too high", GenerationParams{Temperature: 1.1, MaxTokens: 256}, true},
		{"negative temperature", GenerationParams{Temperature: -0.1, MaxTokens: 256}, true},
		{"NaN temperature", GenerationParams{Temperature: math.NaN(), MaxTokens: 256}, true},
		{"too few tokens", GenerationParams{Temperature: 0.7, MaxTokens: 49}, true},
		{"too many tokens", GenerationParams{Temperature: 0.7, MaxTokens: 1025}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
