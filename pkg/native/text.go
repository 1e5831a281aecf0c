package native

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/crossview/pkg/graphics"
)

// measureFace is the fixed-metric face used to size text leaves. Real glyph
// rendering belongs to the platform; layout only needs stable metrics.
var measureFace font.Face = basicfont.Face7x13

// MeasureText returns the natural size of a single line of text.
func MeasureText(text string) graphics.Size {
	advance := font.MeasureString(measureFace, text)
	metrics := measureFace.Metrics()
	return graphics.Size{
		Width:  float64(advance.Ceil()),
		Height: float64(metrics.Height.Ceil()),
	}
}

// NewLabel creates a text leaf sized to its content.
func NewLabel(tag, text string) *View {
	v := NewLeaf(tag, MeasureText(text))
	v.text = text
	return v
}

// Text returns the text shown by a label.
func (v *View) Text() string { return v.text }

// SetText replaces the label's text and re-measures its natural size.
func (v *View) SetText(text string) {
	v.text = text
	v.intrinsic = MeasureText(text)
}
