package component

import "image/color"

// Feedback is a floating score label. It drifts by DY and loses Fade alpha
// every step until it disappears.
type Feedback struct {
	Text  string
	Color color.RGBA
	Alpha float64
	DY    float64
	Fade  float64
}

var FeedbackComponent = NewComponent[Feedback]()
