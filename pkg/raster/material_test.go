package raster

import (
	"math"
	"testing"

	"github.com/taigrr/sw3d/pkg/math3d"
)

func TestLightIntensityRange(t *testing.T) {
	n := math3d.V3(0, 0, 1)

	tests := []struct {
		name     string
		light    math3d.Vec3
		expected float64
	}{
		{"facing light", math3d.V3(0, 0, 1), 1.0},
		{"facing away", math3d.V3(0, 0, -1), 0.3},
		{"perpendicular", math3d.V3(1, 0, 0), 0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := lightIntensity(n, tc.light)
			if math.Abs(got-tc.expected) > 1e-6 {
				t.Errorf("lightIntensity = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestDefaultMaterialFragmentIsOpaqueWhite(t *testing.T) {
	m := DefaultMaterial{}
	rgba := m.FragmentStage(VertexBundle{})
	want := [4]float64{255, 255, 255, 255}
	if rgba != want {
		t.Errorf("DefaultMaterial.FragmentStage = %v, want %v", rgba, want)
	}
}

func TestLitMaterialDefaultAlpha(t *testing.T) {
	m := LitMaterial{BaseColor: math3d.V3(100, 100, 100), LightDir: math3d.V3(0, 0, 1)}
	in := VertexBundle{Normal: math3d.V3(0, 0, 1)}
	rgba := m.FragmentStage(in)
	if rgba[3] != 255 {
		t.Errorf("LitMaterial with unset Alpha should default to 255, got %v", rgba[3])
	}
}

func TestTransparentMaterialPreservesAlpha(t *testing.T) {
	m := TransparentMaterial{BaseColor: math3d.V3(100, 100, 100), LightDir: math3d.V3(0, 0, 1), Alpha: 64}
	in := VertexBundle{Normal: math3d.V3(0, 0, 1)}
	rgba := m.FragmentStage(in)
	if rgba[3] != 64 {
		t.Errorf("TransparentMaterial should emit its own Alpha verbatim, got %v want 64", rgba[3])
	}
}

func TestTexturedMaterialSamplesAndLights(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.SetPixel(0, 0, RGB(200, 100, 50))

	m := TexturedMaterial{Texture: tex, LightDir: math3d.V3(0, 0, -1)}
	in := VertexBundle{UV: math3d.V2(0, 0), Normal: math3d.V3(0, 0, 1)}
	rgba := m.FragmentStage(in)

	// Facing away from the light: ambient-only factor of 0.3.
	if math.Abs(rgba[0]-200*0.3) > 1e-6 {
		t.Errorf("TexturedMaterial R = %v, want %v", rgba[0], 200*0.3)
	}
}
