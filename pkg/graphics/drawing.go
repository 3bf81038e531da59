package graphics

import "fmt"

// CommandKind identifies a primitive in a DrawingContext.
type CommandKind int

const (
	// CommandRect fills Bounds with Color.
	CommandRect CommandKind = iota
	// CommandBorder strokes the inside of Bounds with Thickness.
	CommandBorder
	// CommandText draws Lines starting at the top-left of Bounds.
	CommandText
	// CommandImage draws the Texture scaled into Bounds.
	CommandImage
)

// String returns a human-readable representation of the command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandRect:
		return "rect"
	case CommandBorder:
		return "border"
	case CommandText:
		return "text"
	case CommandImage:
		return "image"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one recorded draw primitive.
type Command struct {
	Kind   CommandKind
	Bounds Rect
	Color  Color
	// Thickness is the stroke of a CommandBorder.
	Thickness Thickness
	// Lines and LineHeight describe a CommandText.
	Lines      []string
	LineHeight float64
	// Texture names the image of a CommandImage.
	Texture string
	// Clip is the region drawing is restricted to when HasClip is set.
	Clip    Rect
	HasClip bool
	// Node is the arena index of the node that emitted the command.
	Node uint32
}

// Canvas is a drawing backend that a DrawingContext can be replayed onto.
type Canvas interface {
	FillRect(bounds Rect, color Color, clip *Rect)
	StrokeRect(bounds Rect, thickness Thickness, color Color, clip *Rect)
	DrawText(bounds Rect, lines []string, lineHeight float64, color Color, clip *Rect)
	DrawImage(bounds Rect, texture string, color Color, clip *Rect)
}

// DrawingContext records draw commands for one frame.
//
// The scene graph only appends to the context while drawing; backends read
// it afterwards with Commands or Replay. A DrawingContext is reused across
// frames: Begin drops the previous frame's commands but keeps capacity.
type DrawingContext struct {
	commands  []Command
	node      uint32
	clipStack []Rect
}

// NewDrawingContext creates an empty context.
func NewDrawingContext() *DrawingContext {
	return &DrawingContext{commands: make([]Command, 0, 64)}
}

// Begin starts a new frame, dropping previously recorded commands.
func (c *DrawingContext) Begin() {
	c.commands = c.commands[:0]
	c.clipStack = c.clipStack[:0]
	c.node = 0
}

// SetNode tags subsequently recorded commands with a node index.
func (c *DrawingContext) SetNode(index uint32) {
	c.node = index
}

// PushClip restricts subsequent commands to r, intersected with the current clip.
func (c *DrawingContext) PushClip(r Rect) {
	if n := len(c.clipStack); n > 0 {
		r = c.clipStack[n-1].Intersect(r)
	}
	c.clipStack = append(c.clipStack, r)
}

// PopClip restores the clip that was current before the matching PushClip.
func (c *DrawingContext) PopClip() {
	if n := len(c.clipStack); n > 0 {
		c.clipStack = c.clipStack[:n-1]
	}
}

func (c *DrawingContext) push(cmd Command) {
	cmd.Node = c.node
	if n := len(c.clipStack); n > 0 {
		cmd.Clip = c.clipStack[n-1]
		cmd.HasClip = true
	}
	c.commands = append(c.commands, cmd)
}

// FillRect records a filled rectangle.
func (c *DrawingContext) FillRect(bounds Rect, color Color) {
	c.push(Command{Kind: CommandRect, Bounds: bounds, Color: color})
}

// StrokeRect records a rectangle outline drawn inside bounds.
func (c *DrawingContext) StrokeRect(bounds Rect, thickness Thickness, color Color) {
	c.push(Command{Kind: CommandBorder, Bounds: bounds, Thickness: thickness, Color: color})
}

// DrawText records a block of pre-broken lines.
func (c *DrawingContext) DrawText(bounds Rect, lines []string, lineHeight float64, color Color) {
	c.push(Command{Kind: CommandText, Bounds: bounds, Lines: lines, LineHeight: lineHeight, Color: color})
}

// DrawImage records an image scaled into bounds.
func (c *DrawingContext) DrawImage(bounds Rect, texture string, color Color) {
	c.push(Command{Kind: CommandImage, Bounds: bounds, Texture: texture, Color: color})
}

// Len returns the number of recorded commands. Nodes use it to remember
// which slice of the buffer they emitted.
func (c *DrawingContext) Len() int {
	return len(c.commands)
}

// Commands returns the recorded commands. The slice is owned by the context
// and is invalidated by the next Begin.
func (c *DrawingContext) Commands() []Command {
	return c.commands
}

// Range returns the commands in [start, end).
func (c *DrawingContext) Range(start, end int) []Command {
	start = max(0, min(start, len(c.commands)))
	end = max(start, min(end, len(c.commands)))
	return c.commands[start:end]
}

// Replay sends every recorded command to canvas in order.
func (c *DrawingContext) Replay(canvas Canvas) {
	for _, cmd := range c.commands {
		var clip *Rect
		if cmd.HasClip {
			r := cmd.Clip
			clip = &r
		}
		switch cmd.Kind {
		case CommandRect:
			canvas.FillRect(cmd.Bounds, cmd.Color, clip)
		case CommandBorder:
			canvas.StrokeRect(cmd.Bounds, cmd.Thickness, cmd.Color, clip)
		case CommandText:
			canvas.DrawText(cmd.Bounds, cmd.Lines, cmd.LineHeight, cmd.Color, clip)
		case CommandImage:
			canvas.DrawImage(cmd.Bounds, cmd.Texture, cmd.Color, clip)
		}
	}
}
