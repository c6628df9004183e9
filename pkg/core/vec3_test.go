package core

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"Cross anticommutes", NewVec3(0, 1, 0).Cross(NewVec3(1, 0, 0)), NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(2, 3, 6)

	if got := v.Dot(NewVec3(1, 1, 1)); got != 11 {
		t.Errorf("Expected dot 11, got %f", got)
	}
	if got := v.LengthSquared(); got != 49 {
		t.Errorf("Expected squared length 49, got %f", got)
	}
	if got := v.Length(); got != 7 {
		t.Errorf("Expected length 7, got %f", got)
	}
}

func TestVec3_NormalizeIsUnitLength(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := NewVec3(
			random.Float32()*200-100,
			random.Float32()*200-100,
			random.Float32()*200-100,
		)
		if v.LengthSquared() == 0 {
			continue
		}
		if l := v.Normalize().Length(); math32.Abs(l-1) > 1e-5 {
			t.Fatalf("Normalize(%v) has length %f", v, l)
		}
	}
}

func TestVec3_NormalizeZeroPropagatesNaN(t *testing.T) {
	n := Vec3{}.Normalize()
	if !math32.IsNaN(n.X) || !math32.IsNaN(n.Y) || !math32.IsNaN(n.Z) {
		t.Errorf("Expected NaN components for zero vector, got %v", n)
	}
}

func TestVec3_DivideByZeroIsInf(t *testing.T) {
	v := NewVec3(1, -1, 1).Divide(0)
	if !math32.IsInf(v.X, 1) || !math32.IsInf(v.Y, -1) {
		t.Errorf("Expected +Inf/-Inf components, got %v", v)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	blue := NewVec3(0.5, 0.7, 1.0)

	if got := white.Lerp(blue, 0); !got.Equals(white) {
		t.Errorf("Lerp at 0: expected %v, got %v", white, got)
	}
	if got := white.Lerp(blue, 1); !got.Equals(blue) {
		t.Errorf("Lerp at 1: expected %v, got %v", blue, got)
	}
	if got := white.Lerp(blue, 0.5); !got.ApproxEquals(NewVec3(0.75, 0.85, 1), 1e-6) {
		t.Errorf("Lerp at 0.5: got %v", got)
	}
}

func TestDegreesToRadians(t *testing.T) {
	if got := DegreesToRadians(180); math32.Abs(got-math32.Pi) > 1e-6 {
		t.Errorf("Expected pi, got %f", got)
	}
	if got := DegreesToRadians(90); got == 1.57 {
		t.Errorf("Expected exact pi/2, got the rounded literal %f", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))

	tests := []struct {
		t        float32
		expected Point3
	}{
		{0, NewVec3(1, 2, 3)},
		{1, NewVec3(1, 2, 1)},
		{2.5, NewVec3(1, 2, -2)},
		{-1, NewVec3(1, 2, 5)},
	}

	for _, tt := range tests {
		if got := ray.At(tt.t); !got.Equals(tt.expected) {
			t.Errorf("At(%f): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestVec3_JSON(t *testing.T) {
	data, err := json.Marshal(NewVec3(1, -2.5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[1,-2.5,0]" {
		t.Errorf("Expected [1,-2.5,0], got %s", data)
	}

	var v Vec3
	if err := json.Unmarshal([]byte("[0.5, 0.7, 1]"), &v); err != nil {
		t.Fatal(err)
	}
	if !v.Equals(NewVec3(0.5, 0.7, 1)) {
		t.Errorf("Expected (0.5,0.7,1), got %v", v)
	}

	for _, bad := range []string{"[1,2]", "[1,2,3,4]", `{"X":1}`, `"red"`} {
		if err := json.Unmarshal([]byte(bad), &v); err == nil {
			t.Errorf("Expected error decoding %s", bad)
		}
	}
}
