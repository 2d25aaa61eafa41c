package domain

import "fmt"

// Color identifies a seat in a match. Seats are colored in join order.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
)

const ColorsCount = 4

var AllColors = [ColorsCount]Color{Red, Blue, Green, Yellow}

var colorNames = [ColorsCount]string{"red", "blue", "green", "yellow"}

func (c Color) Valid() bool {
	return c < ColorsCount
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", uint8(c))
	}
	return []byte(colorNames[c]), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseColor(name string) (Color, error) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", name)
}

const (
	RingSize         = 52
	HomeStretchSize  = 6
	HomeStretchStart = RingSize
	// FinishStep is the relative step that takes a token off the board.
	FinishStep     = RingSize + HomeStretchSize - 1
	TokensPerColor = 4
)

// EntryOffset is the ring index where each color's tokens enter the board.
var EntryOffset = [ColorsCount]int{
	Red:    0,
	Blue:   13,
	Green:  26,
	Yellow: 39,
}

var safeCells = [RingSize]bool{
	0: true, 8: true, 13: true, 21: true,
	26: true, 34: true, 39: true, 47: true,
}

// Cell is a coordinate on the 15x15 board grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RingCells is the shared path, indexed by absolute ring index.
var RingCells = [RingSize]Cell{
	{1, 6}, {2, 6}, {3, 6}, {4, 6}, {5, 6}, {6, 5}, {6, 4}, {6, 3}, {6, 2}, {6, 1}, {6, 0},
	{7, 0}, {8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {9, 6}, {10, 6}, {11, 6}, {12, 6}, {13, 6}, {14, 6},
	{14, 7}, {14, 8}, {13, 8}, {12, 8}, {11, 8}, {10, 8}, {9, 8}, {8, 9}, {8, 10}, {8, 11}, {8, 12}, {8, 13}, {8, 14},
	{7, 14}, {6, 14}, {6, 13}, {6, 12}, {6, 11}, {6, 10}, {6, 9}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
	{0, 7}, {0, 6},
}

// HomeStretchCells are private to each color. The last cell is the finish.
var HomeStretchCells = [ColorsCount][HomeStretchSize]Cell{
	Red:    {{1, 7}, {2, 7}, {3, 7}, {4, 7}, {5, 7}, {6, 7}},
	Blue:   {{7, 1}, {7, 2}, {7, 3}, {7, 4}, {7, 5}, {7, 6}},
	Green:  {{13, 7}, {12, 7}, {11, 7}, {10, 7}, {9, 7}, {8, 7}},
	Yellow: {{7, 13}, {7, 12}, {7, 11}, {7, 10}, {7, 9}, {7, 8}},
}

// RingIndex maps a ring position to its absolute ring index. It reports false
// for positions that are not on the shared ring.
func RingIndex(color Color, relative Position) (int, bool) {
	if !color.Valid() || !relative.OnRing() {
		return 0, false
	}
	return (EntryOffset[color] + int(relative)) % RingSize, true
}

// AbsoluteCell returns the board coordinate of a token. Tokens in base or
// finished have no coordinate.
func AbsoluteCell(color Color, relative Position) (Cell, bool) {
	if !color.Valid() {
		return Cell{}, false
	}
	if idx, ok := RingIndex(color, relative); ok {
		return RingCells[idx], true
	}
	if relative.InHomeStretch() {
		return HomeStretchCells[color][int(relative)-HomeStretchStart], true
	}
	return Cell{}, false
}

func IsSafeCell(index int) bool {
	if index < 0 || index >= RingSize {
		return false
	}
	return safeCells[index]
}
