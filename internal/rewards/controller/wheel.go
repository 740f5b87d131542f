package controller

import (
	"math"
	"strconv"
)

// WheelSlots are the prize labels in clockwise order starting under the pointer.
// They are decoration: the awarded amount always comes from the server.
var WheelSlots = [...]int{10, 50, 100, 250, 500, 15, 75, 200}

var wheelPalette = [...]string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E2",
}

const slotAngle = 360.0 / float64(len(WheelSlots))

func normalize(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// SlotAt returns the index of the slot under the pointer for a wheel rotated by rotation degrees.
func SlotAt(rotation float64) int {
	idx := int(normalize(360-normalize(rotation)) / slotAngle)
	if idx >= len(WheelSlots) {
		idx = len(WheelSlots) - 1
	}
	return idx
}

func easeOutCubic(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	return 1 - math.Pow(1-p, 3)
}

type DrawKind string

const (
	DrawSlice   DrawKind = "slice"
	DrawLabel   DrawKind = "label"
	DrawHub     DrawKind = "hub"
	DrawPointer DrawKind = "pointer"
)

// DrawCommand is one primitive of the wheel picture. Angles are in radians,
// measured clockwise from the positive x axis as on a canvas.
type DrawCommand struct {
	Kind   DrawKind  `json:"kind"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Radius float64   `json:"radius,omitempty"`
	Start  float64   `json:"start,omitempty"`
	End    float64   `json:"end,omitempty"`
	Angle  float64   `json:"angle,omitempty"`
	Color  string    `json:"color,omitempty"`
	Text   string    `json:"text,omitempty"`
	Points []float64 `json:"points,omitempty"`
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RenderWheel draws the wheel for state into a size x size square.
func RenderWheel(state SpinState, size float64) []DrawCommand {
	cx, cy := size/2, size/2
	radius := size/2 - 10
	if radius < 0 {
		radius = 0
	}
	base := state.Rotation - 90

	cmds := make([]DrawCommand, 0, 2*len(WheelSlots)+2)
	for i := range WheelSlots {
		start := base + float64(i)*slotAngle
		cmds = append(cmds, DrawCommand{
			Kind:   DrawSlice,
			X:      cx,
			Y:      cy,
			Radius: radius,
			Start:  rad(start),
			End:    rad(start + slotAngle),
			Color:  wheelPalette[i%len(wheelPalette)],
		})
	}
	for i, amount := range WheelSlots {
		mid := rad(base + (float64(i)+0.5)*slotAngle)
		cmds = append(cmds, DrawCommand{
			Kind:  DrawLabel,
			X:     cx + math.Cos(mid)*radius*0.7,
			Y:     cy + math.Sin(mid)*radius*0.7,
			Angle: mid + math.Pi/2,
			Color: "#FFFFFF",
			Text:  strconv.Itoa(amount),
		})
	}
	cmds = append(cmds,
		DrawCommand{Kind: DrawHub, X: cx, Y: cy, Radius: radius * 0.15, Color: "#FFFFFF"},
		DrawCommand{
			Kind:   DrawPointer,
			X:      cx,
			Y:      cy - radius,
			Color:  "#FF6B6B",
			Points: []float64{cx - 12, cy - radius - 12, cx + 12, cy - radius - 12, cx, cy - radius + 12},
		},
	)
	return cmds
}
