package command

import "fmt"

// Coord is an absolute grid coordinate.
type Coord struct {
	X, Y int
}

// Offset is a coordinate relative to an origin.
type Offset struct {
	DX, DY int
}

// FootprintFromDimensions expands origin into every absolute coordinate
// covered by a w x h rectangle anchored at origin. Both dimensions must
// be at least 1.
func FootprintFromDimensions(origin Coord, w, h int) ([]Coord, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("command: footprint dimensions must be >= 1, got (%d, %d)", w, h)
	}
	coords := make([]Coord, 0, w*h)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			coords = append(coords, Coord{X: origin.X + dx, Y: origin.Y + dy})
		}
	}
	return coords, nil
}

// FootprintFromOffsets expands origin into the set of absolute
// coordinates named by offsets, relative to origin.
func FootprintFromOffsets(origin Coord, offsets []Offset) []Coord {
	coords := make([]Coord, len(offsets))
	for i, o := range offsets {
		coords[i] = Coord{X: origin.X + o.DX, Y: origin.Y + o.DY}
	}
	return coords
}
