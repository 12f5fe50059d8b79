package variant

import (
	"fmt"
	"strings"

	"github.com/lox/pokerengine/internal/engine"
)

// New returns the variant registered under the given code.
func New(code string) (engine.Variant, error) {
	switch strings.ToUpper(code) {
	case "NLH":
		return NewHoldem(), nil
	case "PLO":
		return NewOmaha(), nil
	case "7CS":
		return NewSevenCardStud(), nil
	case "RAZZ":
		return NewRazz(), nil
	case "5CD":
		return NewFiveCardDraw(), nil
	case "27TD":
		return NewTripleDraw(), nil
	case "BDG":
		return NewBadugi(), nil
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", engine.ErrInvalidArgument, code)
	}
}

// Codes lists the supported variant codes.
func Codes() []string {
	return []string{"NLH", "PLO", "7CS", "RAZZ", "5CD", "27TD", "BDG"}
}
