package renderer

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Point3 `json:"lookFrom"`
	LookAt        core.Point3 `json:"lookAt"`
	Up            core.Vec3   `json:"up"`
	VFov          float32     `json:"vfov"`          // Vertical field of view in degrees
	AspectRatio   float32     `json:"aspectRatio"`   // Width / height
	Aperture      float32     `json:"aperture"`      // Lens diameter, 0 = pinhole
	FocusDistance float32     `json:"focusDistance"` // Distance to the focal plane, 0 = |LookFrom - LookAt|
}

// Camera generates rays for rendering. All fields are fixed at construction.
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float32
}

// NewCamera derives the viewport and orthonormal basis from config
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math32.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1,
// s running left to right and t bottom to top.
func (c *Camera) GetRay(s, t float32, sampler core.Sampler) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRay(c.origin.Add(offset), direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Point3 {
	return c.origin
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float32 {
	return c.lensRadius
}
