package pixfx

import (
	"fmt"
	"strings"
)

// Channel selects one of the three color components of a pixel.
type Channel uint8

// Color channels in storage order.
const (
	Red Channel = iota
	Green
	Blue
)

// AllChannels lists the channels in storage order.
var AllChannels = [Channels]Channel{Red, Green, Blue}

// Valid reports whether c is one of Red, Green or Blue.
func (c Channel) Valid() bool {
	return c <= Blue
}

// Others returns the two channels other than c, in storage order.
func (c Channel) Others() [2]Channel {
	switch c {
	case Red:
		return [2]Channel{Green, Blue}
	case Green:
		return [2]Channel{Red, Blue}
	default:
		return [2]Channel{Red, Green}
	}
}

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", uint8(c))
	}
}

// ParseChannel parses a channel name ("red", "g", "2", ...), case-insensitively.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r", "0":
		return Red, nil
	case "green", "g", "1":
		return Green, nil
	case "blue", "b", "2":
		return Blue, nil
	default:
		return 0, fmt.Errorf("pixfx: unknown channel %q", s)
	}
}
