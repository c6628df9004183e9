package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/chewxy/math32"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        core.Vec3              `json:"point"`
	Normal       core.Vec3              `json:"normal"`
	Distance     float32                `json:"distance"`
	OnEdge       bool                   `json:"onEdge"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func hexColor(c core.Vec3) string {
	clamp := func(v float32) int { return int(255 * min(max(v, 0), 1)) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.X), clamp(c.Y), clamp(c.Z))
}

// extractMaterialInfo describes the active fields of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.Lambertian:
		properties["albedo"] = mat.Albedo
		properties["color"] = hexColor(mat.Albedo)
	case material.Metal:
		properties["albedo"] = mat.Albedo
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.Dielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	}
	return properties
}

// InspectResult contains the hit record and the sphere that produced it
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Sphere    *geometry.Sphere // nil when the hit came from an unrecognized hittable
}

// inspectPixel casts a ray through the centre of a pixel. Row 0 is the top of the image.
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	s := (float32(pixelX) + 0.5) / float32(width)
	t := (float32(height-1-pixelY) + 0.5) / float32(height)

	// Fixed seed keeps the lens sample stable between requests
	ray := sceneObj.Camera.GetRay(s, t, core.NewSeededSampler(0))

	hit, isHit := sceneObj.World.Hit(ray, integrator.TMin, math32.Inf(1))
	if !isHit {
		return InspectResult{}
	}

	return InspectResult{
		Hit:       true,
		HitRecord: hit,
		Sphere:    findSphere(sceneObj.World, ray, hit.T),
	}
}

// findSphere locates the sphere hit at distance t; the list itself only returns the record
func findSphere(list *geometry.HittableList, ray core.Ray, t float32) *geometry.Sphere {
	for _, object := range list.Objects {
		switch obj := object.(type) {
		case *geometry.Sphere:
			if h, ok := obj.Hit(ray, integrator.TMin, math32.Inf(1)); ok && h.T == t {
				return obj
			}
		case *geometry.HittableList:
			if sphere := findSphere(obj, ray, t); sphere != nil {
				return sphere
			}
		}
	}
	return nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	properties := map[string]interface{}{
		"material": extractMaterialInfo(result.HitRecord.Material),
	}
	geometryType := "unknown"
	if result.Sphere != nil {
		geometryType = "sphere"
		properties["geometry"] = map[string]interface{}{
			"center": result.Sphere.Center,
			"radius": result.Sphere.Radius,
		}
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: result.HitRecord.Material.Kind.String(),
		GeometryType: geometryType,
		Point:        result.HitRecord.Point,
		Normal:       result.HitRecord.Normal,
		Distance:     result.HitRecord.T,
		OnEdge:       result.HitRecord.OnEdge,
		Properties:   properties,
	})
}
