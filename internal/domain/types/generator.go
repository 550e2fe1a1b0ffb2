package types

// GeneratorPolicy selects the character classes and length of a generated
// password. At least one class must be enabled.
type GeneratorPolicy struct {
	Length           int  `json:"length" yaml:"length"`
	Upper            bool `json:"upper" yaml:"upper"`
	Lower            bool `json:"lower" yaml:"lower"`
	Digits           bool `json:"digits" yaml:"digits"`
	Symbols          bool `json:"symbols" yaml:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous" yaml:"exclude_ambiguous"`
}

// DefaultGeneratorPolicy enables every class at length 16.
func DefaultGeneratorPolicy() GeneratorPolicy {
	return GeneratorPolicy{Length: 16, Upper: true, Lower: true, Digits: true, Symbols: true}
}

// Strength is a coarse password quality estimate.
type Strength struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Feedback []string `json:"feedback,omitempty"`
}
