package recording

import "github.com/gogpu/isovox"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdClear            CommandType = iota // Fill the whole canvas
	CmdFillPolygon                         // Fill a mesh triangle
	CmdFillSmallPolygon                    // Fill an overlay shape
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdClear:            "Clear",
	CmdFillPolygon:      "FillPolygon",
	CmdFillSmallPolygon: "FillSmallPolygon",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// ClearCommand fills the whole canvas with a background color.
type ClearCommand struct {
	Color isovox.RGB
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// FillPolygonCommand fills one flat-colored mesh triangle.
type FillPolygonCommand struct {
	// Points are in surface coordinates, lower apex first.
	Points [3]isovox.Point
	Color  isovox.RGB
}

// Type implements Command.
func (FillPolygonCommand) Type() CommandType { return CmdFillPolygon }

// FillSmallPolygonCommand fills one shape of a decorative overlay.
type FillSmallPolygonCommand struct {
	Points [3]isovox.Point
	Color  isovox.RGB
}

// Type implements Command.
func (FillSmallPolygonCommand) Type() CommandType { return CmdFillSmallPolygon }
