package trvsched

// A WarmthBias classifies the current WARM target temperature: at the
// eco end of the dial, at the comfort end, or somewhere in between.
type WarmthBias uint8

// Available WarmthBias values.
const (
	BiasNeutral WarmthBias = iota
	BiasEco
	BiasComfort
)

// String returns the bias name.
func (b WarmthBias) String() string {
	switch b {
	case BiasEco:
		return "eco"
	case BiasComfort:
		return "comfort"
	default:
		return "neutral"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b WarmthBias) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// A BiasPolicy supplies the current warmth bias. It is the hook for
// the higher-level eco/comfort policy, which lives outside this
// package.
type BiasPolicy interface {
	CurrentBias() WarmthBias
}

// FixedBias is a BiasPolicy always answering the same bias.
type FixedBias WarmthBias

// CurrentBias implements BiasPolicy.
func (b FixedBias) CurrentBias() WarmthBias {
	return WarmthBias(b)
}
