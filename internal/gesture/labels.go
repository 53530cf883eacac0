// Package gesture implements the recognition pipeline: palm coordinate frame,
// geometric feature extraction, rule-based classification, temporal smoothing
// and the emission gate that turns stabilized labels into events.
package gesture

// Label is a recognized hand pose.
type Label string

const (
	LabelThumbsUp Label = "THUMBS_UP"
	LabelSix      Label = "SIX"
	LabelPalm     Label = "PALM"
	LabelFist     Label = "FIST"
	LabelPoint    Label = "POINT"
	LabelV        Label = "V"
	LabelOK       Label = "OK"
	LabelUnknown  Label = "UNKNOWN"
)

// Labels returns every label the classifier can produce.
func Labels() []Label {
	return []Label{
		LabelThumbsUp,
		LabelSix,
		LabelPalm,
		LabelFist,
		LabelPoint,
		LabelV,
		LabelOK,
		LabelUnknown,
	}
}
