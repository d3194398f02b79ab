// Package stars renders a numeric review score into the five-star strip shown
// on product cards and review lists.
package stars

// Variant is the visual state of one star slot.
type Variant string

const (
	Full  Variant = "full"
	Half  Variant = "half"
	Empty Variant = "empty"
)

// Count is the fixed length of every rendered sequence.
const Count = 5

// Color tokens resolved to concrete styles by the display layer.
const (
	ColorAccent = "accent"
	ColorMuted  = "muted"
)

type Star struct {
	Position int
	Variant  Variant
	Size     int
	Color    string
}

// Sequence is always exactly five stars, positions 1..5.
type Sequence [Count]Star

// Render maps a score to its star strip. A nil score means "no rating yet" and
// renders all-empty. Scores above 5 saturate to all-full; a NaN score compares
// false everywhere and degrades to all-empty, which callers rely on.
func Render(score *float64, size int) Sequence {
	var seq Sequence

	for i := 1; i <= Count; i++ {
		star := Star{
			Position: i,
			Variant:  Empty,
			Size:     size,
			Color:    ColorMuted,
		}

		if score != nil {
			switch {
			case *score >= float64(i):
				star.Variant = Full
				star.Color = ColorAccent
			case *score >= float64(i)-0.5:
				star.Variant = Half
				star.Color = ColorAccent
			}
		}

		seq[i-1] = star
	}

	return seq
}
