package components

// CameraComponent tracks the centre of the isometric view in world pixels
type CameraComponent struct {
	X, Y float64
	Zoom float64 // World pixels per screen pixel
}

// NewCameraComponent creates a camera centred on (x, y)
func NewCameraComponent(x, y float64) *CameraComponent {
	return &CameraComponent{
		X:    x,
		Y:    y,
		Zoom: 1.0,
	}
}

// NameComponent stores the display name for entities
type NameComponent struct {
	Name string
}

// NewNameComponent creates a new name component
func NewNameComponent(name string) *NameComponent {
	return &NameComponent{
		Name: name,
	}
}
