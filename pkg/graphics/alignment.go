package graphics

import "fmt"

// HorizontalAlignment controls how a node is placed inside the horizontal
// span its parent allots to it.
type HorizontalAlignment int

const (
	// HorizontalStretch fills the allotted width.
	HorizontalStretch HorizontalAlignment = iota
	// HorizontalLeft places the node at the left edge with its desired width.
	HorizontalLeft
	// HorizontalCenter centers the node with its desired width.
	HorizontalCenter
	// HorizontalRight places the node at the right edge with its desired width.
	HorizontalRight
)

// String returns a human-readable representation of the alignment.
func (a HorizontalAlignment) String() string {
	switch a {
	case HorizontalStretch:
		return "stretch"
	case HorizontalLeft:
		return "left"
	case HorizontalCenter:
		return "center"
	case HorizontalRight:
		return "right"
	default:
		return fmt.Sprintf("HorizontalAlignment(%d)", int(a))
	}
}

// ParseHorizontalAlignment parses the String form of an alignment.
// "start" and "end" are accepted as aliases for left and right.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	switch s {
	case "", "stretch":
		return HorizontalStretch, nil
	case "left", "start":
		return HorizontalLeft, nil
	case "center":
		return HorizontalCenter, nil
	case "right", "end":
		return HorizontalRight, nil
	default:
		return HorizontalStretch, fmt.Errorf("unknown horizontal alignment %q", s)
	}
}

// VerticalAlignment controls how a node is placed inside the vertical span
// its parent allots to it.
type VerticalAlignment int

const (
	// VerticalStretch fills the allotted height.
	VerticalStretch VerticalAlignment = iota
	// VerticalTop places the node at the top edge with its desired height.
	VerticalTop
	// VerticalCenter centers the node with its desired height.
	VerticalCenter
	// VerticalBottom places the node at the bottom edge with its desired height.
	VerticalBottom
)

// String returns a human-readable representation of the alignment.
func (a VerticalAlignment) String() string {
	switch a {
	case VerticalStretch:
		return "stretch"
	case VerticalTop:
		return "top"
	case VerticalCenter:
		return "center"
	case VerticalBottom:
		return "bottom"
	default:
		return fmt.Sprintf("VerticalAlignment(%d)", int(a))
	}
}

// ParseVerticalAlignment parses the String form of an alignment.
// "start" and "end" are accepted as aliases for top and bottom.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	switch s {
	case "", "stretch":
		return VerticalStretch, nil
	case "top", "start":
		return VerticalTop, nil
	case "center":
		return VerticalCenter, nil
	case "bottom", "end":
		return VerticalBottom, nil
	default:
		return VerticalStretch, fmt.Errorf("unknown vertical alignment %q", s)
	}
}

// Visibility controls whether a node takes part in layout and drawing.
type Visibility int

const (
	// Visible nodes are laid out and drawn.
	Visible Visibility = iota
	// Hidden nodes keep their layout space but are not drawn.
	Hidden
	// Collapsed nodes take no space and are neither measured nor drawn.
	Collapsed
)

// String returns a human-readable representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// ParseVisibility parses the String form of a visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "", "visible":
		return Visible, nil
	case "hidden":
		return Hidden, nil
	case "collapsed":
		return Collapsed, nil
	default:
		return Visible, fmt.Errorf("unknown visibility %q", s)
	}
}

// Orientation is the main axis of a one-dimensional widget such as a scroll bar.
type Orientation int

const (
	// Horizontal lays content out along the x axis.
	Horizontal Orientation = iota
	// Vertical lays content out along the y axis.
	Vertical
)

// String returns a human-readable representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation parses the String form of an orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("unknown orientation %q", s)
	}
}
