package core

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the vector as a three element array
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float32{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a three element array
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var components []float32
	if err := json.Unmarshal(data, &components); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	if len(components) != 3 {
		return fmt.Errorf("vec3: expected 3 components, got %d", len(components))
	}
	v.X, v.Y, v.Z = components[0], components[1], components[2]
	return nil
}
