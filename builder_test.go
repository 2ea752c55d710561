package pbrt4

import (
	"errors"
	"testing"
)

func loadScene(test *testing.T, src string) *Scene {
	scene, err := LoadString(src, "")
	if err != nil {
		test.Fatalf("%v", err)
	}
	return scene
}

func TestLoadMinimal(test *testing.T) {
	scene := loadScene(test, "WorldBegin")

	if len(scene.Shapes) != 0 || len(scene.Lights) != 0 {
		test.Errorf("Empty scene should carry no entities")
	}
	if scene.Options.DisplacementEdgeScale != 1 {
		test.Errorf("Default options resulted in %+v", scene.Options)
	}
}

func TestLoadSphereDefaults(test *testing.T) {
	scene := loadScene(test, "WorldBegin\nShape \"sphere\" \"float radius\" [2]\n")

	if len(scene.Shapes) != 1 {
		test.Fatalf("Expected 1 shape, got %d", len(scene.Shapes))
	}
	entity := scene.Shapes[0]

	shape := entity.Shape
	if shape.Type != "sphere" || shape.Radius != 2 {
		test.Errorf("Shape resulted in %+v", shape)
	}
	if shape.ZMin != -2 || shape.ZMax != 2 || shape.PhiMax != 360 || shape.Alpha != 1 {
		test.Errorf("Shape defaults resulted in %+v", shape)
	}

	if entity.Transform != Identity() || entity.ReverseOrientation {
		test.Errorf("Shape placement resulted in %+v", entity)
	}
	if entity.MaterialIndex != -1 || entity.AreaLightIndex != -1 {
		test.Errorf("Shape references resulted in %d, %d", entity.MaterialIndex, entity.AreaLightIndex)
	}
	if entity.InsideMediumIndex != -1 || entity.OutsideMediumIndex != -1 {
		test.Errorf("Shape mediums resulted in %d, %d", entity.InsideMediumIndex, entity.OutsideMediumIndex)
	}
}

func TestLoadMissingWorldBegin(test *testing.T) {
	for _, src := range []string{"", "Scale 1 1 1"} {
		if _, err := LoadString(src, ""); !errors.Is(err, ErrMissingWorldBegin) {
			test.Errorf("Loading %q should have caused ErrMissingWorldBegin, got %v", src, err)
		}
	}
}

func TestLoadDuplicateWorldBegin(test *testing.T) {
	_, err := LoadString("WorldBegin\nWorldBegin", "")
	if !errors.Is(err, ErrDuplicateWorldBegin) {
		test.Errorf("Second WorldBegin should have caused ErrDuplicateWorldBegin, got %v", err)
	}
}

func TestLoadUnbalancedAttributes(test *testing.T) {
	_, err := LoadString("WorldBegin\nAttributeBegin", "")
	if !errors.Is(err, ErrUnbalancedAttributes) {
		test.Errorf("Open scope at end should have caused ErrUnbalancedAttributes, got %v", err)
	}

	_, err = LoadString("WorldBegin\nAttributeEnd", "")
	if !errors.Is(err, ErrUnmatchedAttributeEnd) {
		test.Errorf("Stray AttributeEnd should have caused ErrUnmatchedAttributeEnd, got %v", err)
	}
}

func TestLoadAttributeScope(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
Material "diffuse"
AttributeBegin
    Translate 1 0 0
    Material "conductor"
    ReverseOrientation
    Shape "sphere"
AttributeEnd
Shape "sphere"
`)

	if len(scene.Shapes) != 2 {
		test.Fatalf("Expected 2 shapes, got %d", len(scene.Shapes))
	}

	inner := scene.Shapes[0]
	if inner.MaterialIndex != 1 || !inner.ReverseOrientation {
		test.Errorf("Scoped shape resulted in material %d, orientation %v", inner.MaterialIndex, inner.ReverseOrientation)
	}
	if inner.Transform[12] != 1 {
		test.Errorf("Scoped shape transform resulted in %v", inner.Transform)
	}

	outer := scene.Shapes[1]
	if outer.MaterialIndex != 0 || outer.ReverseOrientation {
		test.Errorf("Scope end should restore material %d and orientation %v", outer.MaterialIndex, outer.ReverseOrientation)
	}
	if !matrixNear(outer.Transform, Identity()) {
		test.Errorf("Scope end should restore the transform, got %v", outer.Transform)
	}
}

func TestLoadNestedScopes(test *testing.T) {
	scene := loadScene(test, `
Translate 5 0 0
WorldBegin
AttributeBegin
    Scale 2 2 2
    AttributeBegin
        Rotate 45 0 0 1
        Shape "sphere"
    AttributeEnd
AttributeEnd
Shape "sphere"
`)

	inner := scene.Shapes[0].Transform
	expected := Translate(5, 0, 0).Mul(Scale(2, 2, 2)).Mul(Rotate(45, 0, 0, 1))
	if !matrixNear(inner, expected) {
		test.Errorf("Nested scope transform resulted in %v", inner)
	}

	// Unwinding both scopes brings back the exact pre-scope value, not
	// an approximation.
	if scene.Shapes[1].Transform != Translate(5, 0, 0) {
		test.Errorf("Unwound transform resulted in %v", scene.Shapes[1].Transform)
	}
}

func TestLoadTransforms(test *testing.T) {
	scene := loadScene(test, `
Translate 1 0 0
Scale 2 2 2
WorldBegin
Shape "sphere"
Identity
Shape "sphere"
Transform [ 1 0 0 0 0 1 0 0 0 0 1 0 3 1 -4 1 ]
ConcatTransform [ 1 0 0 0 0 1 0 0 0 0 1 0 1 0 0 1 ]
Shape "sphere"
`)

	if len(scene.Shapes) != 3 {
		test.Fatalf("Expected 3 shapes, got %d", len(scene.Shapes))
	}

	// Scale applied in the translated frame keeps the translation.
	m := scene.Shapes[0].Transform
	if m[12] != 1 || m[0] != 2 {
		test.Errorf("Composed transform resulted in %v", m)
	}

	if !matrixNear(scene.Shapes[1].Transform, Identity()) {
		test.Errorf("Identity should reset the transform, got %v", scene.Shapes[1].Transform)
	}

	// Transform replaces, ConcatTransform multiplies on the right.
	m = scene.Shapes[2].Transform
	if m[12] != 4 || m[13] != 1 || m[14] != -4 {
		test.Errorf("Replaced transform resulted in %v", m)
	}
}

func TestLoadCamera(test *testing.T) {
	scene := loadScene(test, `
Scale 2 2 2
Camera "perspective" "float fov" 31
WorldBegin
CoordSysTransform "camera"
Shape "sphere"
`)

	if scene.Camera == nil {
		test.Fatalf("Camera missing from scene")
	}
	if scene.Camera.Camera.Type != "perspective" || scene.Camera.Camera.FOV != 31 {
		test.Errorf("Camera resulted in %+v", scene.Camera.Camera)
	}
	if scene.Camera.MediumIndex != -1 {
		test.Errorf("Camera without a medium resulted in %d", scene.Camera.MediumIndex)
	}

	// The recorded placement is the inverse of the transform that was
	// current at the Camera directive, and is also registered as the
	// "camera" coordinate system.
	if !matrixNear(scene.Camera.Transform, Scale(0.5, 0.5, 0.5)) {
		test.Errorf("Camera transform resulted in %v", scene.Camera.Transform)
	}
	if !matrixNear(scene.Shapes[0].Transform, scene.Camera.Transform) {
		test.Errorf("CoordSysTransform \"camera\" resulted in %v", scene.Shapes[0].Transform)
	}
}

func TestLoadCameraMedium(test *testing.T) {
	scene := loadScene(test, `
MakeNamedMedium "haze" "string type" "homogeneous"
MediumInterface "" "haze"
Camera "perspective"
WorldBegin
Shape "sphere"
`)

	if scene.Camera == nil {
		test.Fatalf("Camera missing from scene")
	}
	if scene.Camera.MediumIndex != 0 {
		test.Errorf("Camera medium resulted in %d", scene.Camera.MediumIndex)
	}
	if s := scene.Shapes[0]; s.OutsideMediumIndex != 0 {
		test.Errorf("Shape outside medium resulted in %d", s.OutsideMediumIndex)
	}
}

func TestLoadCoordinateSystem(test *testing.T) {
	scene := loadScene(test, `
Translate 1 2 3
CoordinateSystem "mark"
Identity
WorldBegin
CoordSysTransform "mark"
Shape "sphere"
`)

	if !matrixNear(scene.Shapes[0].Transform, Translate(1, 2, 3)) {
		test.Errorf("Restored transform resulted in %v", scene.Shapes[0].Transform)
	}

	_, err := LoadString(`WorldBegin
CoordSysTransform "nope"`, "")
	if !errors.Is(err, ErrUnknownCoordinateSystem) {
		test.Errorf("Unknown name should have caused ErrUnknownCoordinateSystem, got %v", err)
	}
}

func TestLoadAttributeParams(test *testing.T) {
	// Attribute parameters override the ones given with the shape.
	scene := loadScene(test, `
WorldBegin
Attribute "shape" "float radius" 2
Shape "sphere" "float radius" 5
`)

	if r := scene.Shapes[0].Shape.Radius; r != 2 {
		test.Errorf("Attribute radius should win, got %v", r)
	}
	if z := scene.Shapes[0].Shape.ZMin; z != -2 {
		test.Errorf("zmin should follow the effective radius, got %v", z)
	}
}

func TestLoadAttributeParamsScoped(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
AttributeBegin
    Attribute "shape" "float radius" 2
    Shape "sphere"
AttributeEnd
Shape "sphere"
`)

	if r := scene.Shapes[0].Shape.Radius; r != 2 {
		test.Errorf("Scoped attribute radius resulted in %v", r)
	}
	if r := scene.Shapes[1].Shape.Radius; r != 1 {
		test.Errorf("Scope end should drop attribute parameters, radius resulted in %v", r)
	}
}

func TestLoadAttributeUnknownTarget(test *testing.T) {
	_, err := LoadString(`WorldBegin
Attribute "lens" "float radius" 2`, "")
	if !errors.Is(err, ErrUnknownAttributeTarget) {
		test.Errorf("Unknown target should have caused ErrUnknownAttributeTarget, got %v", err)
	}
}

func TestLoadNamedMaterials(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
MakeNamedMaterial "red" "string type" "diffuse" "rgb reflectance" [ 1 0 0 ]
Material "conductor"
Shape "sphere"
NamedMaterial "red"
Shape "sphere"
NamedMaterial "missing"
Shape "sphere"
`)

	if len(scene.Materials) != 2 {
		test.Fatalf("Expected 2 materials, got %d", len(scene.Materials))
	}
	if scene.Materials[0].Name != "red" || scene.Materials[0].Material.Type != "diffuse" {
		test.Errorf("Named material resulted in %+v", scene.Materials[0])
	}
	if scene.Materials[1].Name != "" {
		test.Errorf("Anonymous material should carry no name, got %q", scene.Materials[1].Name)
	}

	// MakeNamedMaterial must not change the current material.
	if idx := scene.Shapes[0].MaterialIndex; idx != 1 {
		test.Errorf("First shape material resulted in %d", idx)
	}
	if idx := scene.Shapes[1].MaterialIndex; idx != 0 {
		test.Errorf("Second shape material resulted in %d", idx)
	}
	if idx := scene.Shapes[2].MaterialIndex; idx != -1 {
		test.Errorf("Unknown material name should select none, got %d", idx)
	}
}

func TestLoadNamedMaterialOrder(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
MakeNamedMaterial "a" "string type" "diffuse"
MakeNamedMaterial "b" "string type" "conductor"
NamedMaterial "a"
Shape "sphere"
NamedMaterial "b"
Shape "sphere"
`)

	if scene.Shapes[0].MaterialIndex != 0 || scene.Shapes[1].MaterialIndex != 1 {
		test.Errorf("Material indices resulted in %d, %d",
			scene.Shapes[0].MaterialIndex, scene.Shapes[1].MaterialIndex)
	}
}

func TestLoadAreaLights(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
AttributeBegin
    AreaLightSource "diffuse" "rgb L" [ 1 1 1 ]
    Shape "disk"
    Shape "sphere"
AttributeEnd
Shape "sphere"
`)

	if len(scene.AreaLights) != 1 {
		test.Fatalf("Expected 1 area light, got %d", len(scene.AreaLights))
	}
	light := scene.AreaLights[0]
	if light.L == nil || light.L.Kind != SpectrumRGB || light.L.RGB != [3]float32{1, 1, 1} {
		test.Errorf("Area light radiance resulted in %+v", light.L)
	}

	if scene.Shapes[0].AreaLightIndex != 0 || scene.Shapes[1].AreaLightIndex != 0 {
		test.Errorf("Shapes in scope should reference the area light")
	}
	if scene.Shapes[2].AreaLightIndex != -1 {
		test.Errorf("Scope end should clear the area light, got %d", scene.Shapes[2].AreaLightIndex)
	}
}

func TestLoadMediums(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
MakeNamedMedium "fog" "string type" "homogeneous" "float g" 0.7
MediumInterface "fog" ""
Shape "sphere"
MediumInterface "" "fog"
Shape "sphere"
MediumInterface "ghost" ""
Shape "sphere"
`)

	if len(scene.Mediums) != 1 {
		test.Fatalf("Expected 1 medium, got %d", len(scene.Mediums))
	}
	medium := scene.Mediums[0]
	if medium.Name != "fog" || medium.Medium.Type != "homogeneous" || medium.Medium.G != 0.7 {
		test.Errorf("Medium resulted in %+v", medium)
	}

	if s := scene.Shapes[0]; s.InsideMediumIndex != 0 || s.OutsideMediumIndex != -1 {
		test.Errorf("First shape mediums resulted in %d, %d", s.InsideMediumIndex, s.OutsideMediumIndex)
	}
	if s := scene.Shapes[1]; s.InsideMediumIndex != -1 || s.OutsideMediumIndex != 0 {
		test.Errorf("Second shape mediums resulted in %d, %d", s.InsideMediumIndex, s.OutsideMediumIndex)
	}
	// Names with no definition resolve to no medium.
	if s := scene.Shapes[2]; s.InsideMediumIndex != -1 {
		test.Errorf("Unknown medium name resulted in %d", s.InsideMediumIndex)
	}
}

func TestLoadTextures(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
Texture "checks" "spectrum" "checkerboard" "float uscale" 8 "float vscale" 8
Material "diffuse" "texture reflectance" "checks"
Shape "sphere"
`)

	if len(scene.Textures) != 1 {
		test.Fatalf("Expected 1 texture, got %d", len(scene.Textures))
	}
	entity := scene.Textures[0]
	if entity.Name != "checks" || entity.Type != "spectrum" || entity.Class != "checkerboard" {
		test.Errorf("Texture entity resulted in %+v", entity)
	}
	if entity.Texture.UScale != 8 {
		test.Errorf("Texture uscale resulted in %v", entity.Texture.UScale)
	}

	material := scene.Materials[0].Material
	if material.Reflectance == nil || material.Reflectance.TextureIndex != 0 {
		test.Errorf("Material reflectance resulted in %+v", material.Reflectance)
	}
}

func TestLoadLights(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
LightSource "infinite" "rgb L" [ 0.4 0.45 0.5 ]
Translate 0 0 10
LightSource "point" "rgb I" [ 10 10 10 ]
`)

	if len(scene.Lights) != 2 {
		test.Fatalf("Expected 2 lights, got %d", len(scene.Lights))
	}

	infinite := scene.Lights[0]
	if infinite.Light.Type != "infinite" || infinite.Light.L == nil || infinite.Light.L.RGB != [3]float32{0.4, 0.45, 0.5} {
		test.Errorf("Infinite light resulted in %+v", infinite.Light)
	}

	point := scene.Lights[1]
	if point.Light.Type != "point" || point.Light.I == nil {
		test.Errorf("Point light resulted in %+v", point.Light)
	}
	if point.Transform[14] != 10 {
		test.Errorf("Point light transform resulted in %v", point.Transform)
	}
}

func TestLoadReverseOrientation(test *testing.T) {
	scene := loadScene(test, `
WorldBegin
ReverseOrientation
ReverseOrientation
Shape "sphere"
ReverseOrientation
Shape "sphere"
`)

	if scene.Shapes[0].ReverseOrientation {
		test.Errorf("Double reversal should cancel out")
	}
	if !scene.Shapes[1].ReverseOrientation {
		test.Errorf("Orientation should be reversed")
	}
}

func TestLoadOptions(test *testing.T) {
	scene := loadScene(test, `
Option "bool disablepixeljitter" true
Option "string rendercoordsys" "world"
Option "float displacementedgescale" 4
Option "string experimentalknob" "on"
WorldBegin
`)

	opts := scene.Options
	if !opts.DisablePixelJitter || opts.RenderingSpace != CoordSysWorld || opts.DisplacementEdgeScale != 4 {
		test.Errorf("Options resulted in %+v", opts)
	}

	_, err := LoadString(`Option "string disablepixeljitter" "yes"
WorldBegin`, "")
	if !errors.Is(err, ErrInvalidOptionValue) {
		test.Errorf("Mistyped option should have caused ErrInvalidOptionValue, got %v", err)
	}

	_, err = LoadString(`Option "string rendercoordsys" "object"
WorldBegin`, "")
	if !errors.Is(err, ErrUnknownCoordinateSystem) {
		test.Errorf("Bad rendercoordsys should have caused ErrUnknownCoordinateSystem, got %v", err)
	}
}

func TestLoadSingletons(test *testing.T) {
	scene := loadScene(test, `
Film "rgb" "integer xresolution" [ 1000 ]
Sampler "halton" "integer pixelsamples" 128
Integrator "volpath" "integer maxdepth" 100
Accelerator "bvh"
PixelFilter "gaussian"
ColorSpace "rec2020"
WorldBegin
`)

	if scene.Film == nil || scene.Film.XResolution != 1000 || scene.Film.YResolution != 720 {
		test.Errorf("Film resulted in %+v", scene.Film)
	}
	if scene.Sampler == nil || scene.Sampler.PixelSamples != 128 || scene.Sampler.Randomization != "permutedigits" {
		test.Errorf("Sampler resulted in %+v", scene.Sampler)
	}
	if scene.Integrator == nil || scene.Integrator.MaxDepth != 100 {
		test.Errorf("Integrator resulted in %+v", scene.Integrator)
	}
	if scene.Accelerator == nil || scene.Accelerator.MaxNodePrims != 4 || scene.Accelerator.SplitMethod != "sah" {
		test.Errorf("Accelerator resulted in %+v", scene.Accelerator)
	}
	if scene.PixelFilter != "gaussian" || scene.ColorSpace != "rec2020" {
		test.Errorf("Filter and color space resulted in %q, %q", scene.PixelFilter, scene.ColorSpace)
	}
}

func TestLoadUnsupported(test *testing.T) {
	sources := []string{
		`Import "geometry/bigcar.pbrt"`,
		`WorldBegin
ObjectBegin "tree"`,
		"TransformTimes 0 1",
	}
	for _, src := range sources {
		if _, err := LoadString(src, ""); !errors.Is(err, ErrUnsupported) {
			test.Errorf("Loading %q should have caused ErrUnsupported, got %v", src, err)
		}
	}
}
