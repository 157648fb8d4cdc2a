package terminal

// Zoom limits and step for the terminal viewport.
const (
	MinZoom  = 0.25
	MaxZoom  = 4.0
	ZoomStep = 1.25
)

// Viewport tracks the zoom level shown in the status bar. It implements
// editor.Viewport.
type Viewport struct {
	Zoom float64
}

// NewViewport creates a viewport at 100%.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// ZoomToFit resets to 100%, at which every node is listed.
func (v *Viewport) ZoomToFit() { v.Zoom = 1 }

// ZoomIn enlarges by one step, up to MaxZoom.
func (v *Viewport) ZoomIn() { v.Zoom = min(v.Zoom*ZoomStep, MaxZoom) }

// ZoomOut shrinks by one step, down to MinZoom.
func (v *Viewport) ZoomOut() { v.Zoom = max(v.Zoom/ZoomStep, MinZoom) }
