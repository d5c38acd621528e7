package prompt

import (
	"fmt"
	"math"
)

const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	TemperatureStep    = 0.1
	DefaultTemperature = 0.7

	MinMaxTokens     = 50
	MaxMaxTokens     = 1024
	MaxTokensStep    = 50
	DefaultMaxTokens = 256
)

// GenerationParams are the sidebar controls forwarded to every completion call.
type GenerationParams struct {
	Temperature float64 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`
}

func DefaultParams() GenerationParams {
	return GenerationParams{Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens}
}

// Validate checks the bounds. Step granularity is a UI affordance and is not
// enforced here.
func (p GenerationParams) Validate() error {
	if math.IsNaN(p.Temperature) || p.Temperature < MinTemperature || p.Temperature > MaxTemperature {
		return fmt.Errorf("temperature must be between %.1f and %.1f, got %v", MinTemperature, MaxTemperature, p.Temperature)
	}
	if p.MaxTokens < MinMaxTokens || p.MaxTokens > MaxMaxTokens {
		return fmt.Errorf("max tokens must be between %d and %d, got %d", MinMaxTokens, MaxMaxTokens, p.MaxTokens)
	}
	return nil
}
