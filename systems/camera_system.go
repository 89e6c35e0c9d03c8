package systems

import (
	"citybuilder/components"
	"citybuilder/config"
	"citybuilder/ecs"
)

// CameraSystem handles viewport panning, zoom and screen to grid picking
type CameraSystem struct {
	viewW, viewH float64
	panX, panY   float64 // pending pan in screen pixels
	zoomFactor   float64 // pending zoom multiplier
}

// NewCameraSystem creates a new camera system
func NewCameraSystem() *CameraSystem {
	w, h := config.GetScreenDimensions()
	return &CameraSystem{
		viewW:      float64(w),
		viewH:      float64(h),
		zoomFactor: 1,
	}
}

// SetViewport sets the size in screen pixels of the area the map is drawn in
func (s *CameraSystem) SetViewport(w, h int) {
	s.viewW, s.viewH = float64(w), float64(h)
}

// Viewport returns the current viewport size
func (s *CameraSystem) Viewport() (float64, float64) {
	return s.viewW, s.viewH
}

// Pan queues a move of the view by (dx, dy) screen pixels
func (s *CameraSystem) Pan(dx, dy float64) {
	s.panX += dx
	s.panY += dy
}

// Zoom queues a zoom step; factors above one zoom out
func (s *CameraSystem) Zoom(factor float64) {
	s.zoomFactor *= factor
}

// Update applies queued input to the camera and keeps its centre on the map
func (s *CameraSystem) Update(world *ecs.World, dt float64) {
	camera := CameraFromWorld(world)
	if camera == nil {
		return
	}
	oldX, oldY, oldZoom := camera.X, camera.Y, camera.Zoom

	camera.X += s.panX * camera.Zoom
	camera.Y += s.panY * camera.Zoom
	camera.SetZoom(camera.Zoom*s.zoomFactor, config.MinZoom, config.MaxZoom)
	s.panX, s.panY, s.zoomFactor = 0, 0, 1

	if c := CityFromWorld(world); c != nil {
		w, h := c.Map.IsoBounds()
		camera.X = clampFloat(camera.X, 0, w)
		camera.Y = clampFloat(camera.Y, 0, h)
	}

	if oldX != camera.X || oldY != camera.Y || oldZoom != camera.Zoom {
		world.EmitEvent(CameraUpdateEvent{
			CameraID: world.FirstWithTag("camera").ID,
			X:        camera.X,
			Y:        camera.Y,
			Zoom:     camera.Zoom,
		})
	}
}

// CenterOn moves the camera to the middle of the city map
func (s *CameraSystem) CenterOn(world *ecs.World) {
	camera := CameraFromWorld(world)
	c := CityFromWorld(world)
	if camera == nil || c == nil {
		return
	}
	w, h := c.Map.IsoBounds()
	camera.X, camera.Y = w*0.5, h*0.5
}

// ScreenToWorld converts screen coordinates to world pixel coordinates
func (s *CameraSystem) ScreenToWorld(world *ecs.World, screenX, screenY int) (float64, float64) {
	camera := CameraFromWorld(world)
	if camera == nil {
		return float64(screenX), float64(screenY)
	}
	return camera.ScreenToWorld(float64(screenX), float64(screenY), s.viewW, s.viewH)
}

// ScreenToGrid returns the map cell under a screen pixel
func (s *CameraSystem) ScreenToGrid(world *ecs.World, screenX, screenY int) (components.Point, bool) {
	c := CityFromWorld(world)
	if c == nil {
		return components.Point{}, false
	}
	wx, wy := s.ScreenToWorld(world, screenX, screenY)
	return c.Map.GridAt(wx, wy)
}

// CameraFromWorld returns the camera of the entity tagged "camera"
func CameraFromWorld(world *ecs.World) *components.CameraComponent {
	camera, _ := ecs.Lookup[*components.CameraComponent](world, "camera", components.Camera)
	return camera
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
