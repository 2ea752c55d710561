package pbrt4

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// graphicsState is the state saved by AttributeBegin and restored by
// AttributeEnd: the current transform, orientation flag, material and
// area light selection, medium interface, and the parameters that
// Attribute directives have accumulated per target.
type graphicsState struct {
	reverseOrientation bool
	transform          Matrix

	materialIndex  int
	areaLightIndex int

	interiorMedium string
	exteriorMedium string

	shapeParams    ParamList
	lightParams    ParamList
	materialParams ParamList
	mediumParams   ParamList
	textureParams  ParamList
}

func newGraphicsState() graphicsState {
	return graphicsState{
		transform:      Identity(),
		materialIndex:  -1,
		areaLightIndex: -1,
	}
}

// clone copies the state deeply enough that mutating the original
// afterwards leaves the copy untouched. Individual parameters are
// shared; they are never modified after parsing.
func (s graphicsState) clone() graphicsState {
	c := s
	c.shapeParams = s.shapeParams.clone()
	c.lightParams = s.lightParams.clone()
	c.materialParams = s.materialParams.clone()
	c.mediumParams = s.mediumParams.clone()
	c.textureParams = s.textureParams.clone()
	return c
}

// loader drives a parser stack and folds the stream of scene elements
// into a Scene.
type loader struct {
	scene *Scene

	state      graphicsState
	stateStack []graphicsState

	// parsers is the include stack; the active parser is the last one.
	parsers []*Parser

	// baseDir resolves relative Include paths. It is always the
	// directory of the top level file, even for nested includes.
	baseDir string

	coordSys  map[string]Matrix
	materials map[string]int
	textures  map[string]int
	mediums   map[string]int

	worldBegin bool
}

// LoadFile reads and parses the scene description at path. Include
// directives are resolved relative to the file's directory.
func LoadFile(path string) (*Scene, error) {
	Debug("load scene ", path)

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return load(string(buf), filepath.Dir(path))
}

// LoadString parses a scene description held in memory. Include
// directives are resolved relative to baseDir.
func LoadString(src, baseDir string) (*Scene, error) {
	return load(src, baseDir)
}

func load(src, baseDir string) (*Scene, error) {
	l := &loader{
		scene:     &Scene{Options: defaultOptions()},
		state:     newGraphicsState(),
		parsers:   []*Parser{NewParser(src)},
		baseDir:   baseDir,
		coordSys:  map[string]Matrix{},
		materials: map[string]int{},
		textures:  map[string]int{},
		mediums:   map[string]int{},
	}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.scene, nil
}

func (l *loader) run() error {
	for len(l.parsers) > 0 {
		parser := l.parsers[len(l.parsers)-1]

		elem, err := parser.ParseNext()
		if errors.Is(err, io.EOF) {
			l.parsers = l.parsers[:len(l.parsers)-1]
			continue
		}
		if err != nil {
			return err
		}

		if err := l.apply(elem); err != nil {
			return err
		}
	}

	if !l.worldBegin {
		return ErrMissingWorldBegin
	}
	if len(l.stateStack) > 0 {
		return ErrUnbalancedAttributes
	}
	return nil
}

func (l *loader) apply(elem *Element) error {
	Debug("apply ", elem.Kind)

	switch elem.Kind {
	case ElementInclude:
		return l.include(elem.Path)

	case ElementImport, ElementTransformTimes, ElementActiveTransform,
		ElementObjectBegin, ElementObjectEnd, ElementObjectInstance:
		return fmt.Errorf("%w: %s", ErrUnsupported, elem.Kind)

	case ElementOption:
		return l.scene.Options.apply(elem.Param)

	case ElementFilm:
		film, err := NewFilm(elem.Type, elem.Params)
		if err != nil {
			return err
		}
		l.scene.Film = &film

	case ElementColorSpace:
		l.scene.ColorSpace = elem.Type

	case ElementCamera:
		camera, err := NewCamera(elem.Type, elem.Params)
		if err != nil {
			return err
		}

		// The current transform places the world relative to the
		// camera; its inverse is the camera to world transform the
		// scene records, also available as the "camera" coordinate
		// system.
		transform := l.state.transform.Inverse()
		l.coordSys["camera"] = transform
		l.scene.Camera = &CameraEntity{
			Camera:      camera,
			Transform:   transform,
			MediumIndex: l.lookupMedium(l.state.exteriorMedium),
		}

	case ElementSampler:
		sampler, err := NewSampler(elem.Type, elem.Params)
		if err != nil {
			return err
		}
		l.scene.Sampler = &sampler

	case ElementIntegrator:
		integrator, err := NewIntegrator(elem.Type, elem.Params)
		if err != nil {
			return err
		}
		l.scene.Integrator = &integrator

	case ElementAccelerator:
		accel, err := NewAccelerator(elem.Type, elem.Params)
		if err != nil {
			return err
		}
		l.scene.Accelerator = &accel

	case ElementCoordinateSystem:
		l.coordSys[elem.Name] = l.state.transform

	case ElementCoordSysTransform:
		m, ok := l.coordSys[elem.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCoordinateSystem, elem.Name)
		}
		l.state.transform = m

	case ElementPixelFilter:
		l.scene.PixelFilter = elem.Name

	case ElementIdentity:
		l.state.transform = Identity()

	case ElementTranslate:
		v := elem.Values
		l.state.transform = l.state.transform.Mul(Translate(v[0], v[1], v[2]))

	case ElementScale:
		v := elem.Values
		l.state.transform = l.state.transform.Mul(Scale(v[0], v[1], v[2]))

	case ElementRotate:
		v := elem.Values
		l.state.transform = l.state.transform.Mul(Rotate(v[0], v[1], v[2], v[3]))

	case ElementLookAt:
		v := elem.Values
		eye := [3]float32{v[0], v[1], v[2]}
		look := [3]float32{v[3], v[4], v[5]}
		up := [3]float32{v[6], v[7], v[8]}
		l.state.transform = l.state.transform.Mul(LookAt(eye, look, up))

	case ElementTransform:
		l.state.transform = NewMatrix(elem.Values)

	case ElementConcatTransform:
		l.state.transform = l.state.transform.Mul(NewMatrix(elem.Values))

	case ElementReverseOrientation:
		l.state.reverseOrientation = !l.state.reverseOrientation

	case ElementWorldBegin:
		if l.worldBegin {
			return ErrDuplicateWorldBegin
		}
		l.worldBegin = true

	case ElementAttributeBegin:
		l.stateStack = append(l.stateStack, l.state.clone())

	case ElementAttributeEnd:
		if len(l.stateStack) == 0 {
			return ErrUnmatchedAttributeEnd
		}
		l.state = l.stateStack[len(l.stateStack)-1]
		l.stateStack = l.stateStack[:len(l.stateStack)-1]

	case ElementAttribute:
		return l.attribute(elem.Target, elem.Params)

	case ElementLightSource:
		light, err := NewLight(elem.Type, mergeParams(elem.Params, l.state.lightParams))
		if err != nil {
			return err
		}
		l.scene.Lights = append(l.scene.Lights, LightEntity{
			Light:     light,
			Transform: l.state.transform,
		})

	case ElementAreaLightSource:
		area, err := NewAreaLight(elem.Type, mergeParams(elem.Params, l.state.lightParams))
		if err != nil {
			return err
		}
		l.state.areaLightIndex = len(l.scene.AreaLights)
		l.scene.AreaLights = append(l.scene.AreaLights, area)

	case ElementMaterial:
		material, err := NewMaterial(elem.Type, mergeParams(elem.Params, l.state.materialParams), l.textures)
		if err != nil {
			return err
		}
		l.state.materialIndex = len(l.scene.Materials)
		l.scene.Materials = append(l.scene.Materials, MaterialEntity{Material: material})

	case ElementMakeNamedMaterial:
		params := mergeParams(elem.Params, l.state.materialParams)
		ty, _ := params.String("type")

		material, err := NewMaterial(ty, params, l.textures)
		if err != nil {
			return err
		}
		l.materials[elem.Name] = len(l.scene.Materials)
		l.scene.Materials = append(l.scene.Materials, MaterialEntity{
			Name:     elem.Name,
			Material: material,
		})

	case ElementNamedMaterial:
		// Unknown names select no material rather than failing, so
		// scenes referencing materials defined in files that are not
		// loaded still parse.
		if idx, ok := l.materials[elem.Name]; ok {
			l.state.materialIndex = idx
		} else {
			l.state.materialIndex = -1
		}

	case ElementTexture:
		texture, err := NewTexture(elem.Class, mergeParams(elem.Params, l.state.textureParams), l.textures)
		if err != nil {
			return err
		}
		l.textures[elem.Name] = len(l.scene.Textures)
		l.scene.Textures = append(l.scene.Textures, TextureEntity{
			Name:    elem.Name,
			Type:    elem.Type,
			Class:   elem.Class,
			Texture: texture,
		})

	case ElementMakeNamedMedium:
		params := mergeParams(elem.Params, l.state.mediumParams)
		ty, _ := params.String("type")

		medium, err := NewMedium(ty, params)
		if err != nil {
			return err
		}
		l.mediums[elem.Name] = len(l.scene.Mediums)
		l.scene.Mediums = append(l.scene.Mediums, MediumEntity{
			Name:      elem.Name,
			Medium:    medium,
			Transform: l.state.transform,
		})

	case ElementMediumInterface:
		l.state.interiorMedium = elem.Interior
		l.state.exteriorMedium = elem.Exterior

	case ElementShape:
		shape, err := NewShape(elem.Type, mergeParams(elem.Params, l.state.shapeParams))
		if err != nil {
			return err
		}
		l.scene.Shapes = append(l.scene.Shapes, ShapeEntity{
			Shape:              shape,
			Transform:          l.state.transform,
			ReverseOrientation: l.state.reverseOrientation,
			MaterialIndex:      l.state.materialIndex,
			AreaLightIndex:     l.state.areaLightIndex,
			InsideMediumIndex:  l.lookupMedium(l.state.interiorMedium),
			OutsideMediumIndex: l.lookupMedium(l.state.exteriorMedium),
		})
	}

	return nil
}

// attribute stores parameters that apply to every later entity of the
// targeted category within the current scope.
func (l *loader) attribute(target string, params ParamList) error {
	switch target {
	case "shape":
		l.state.shapeParams.Extend(params)
	case "light":
		l.state.lightParams.Extend(params)
	case "material":
		l.state.materialParams.Extend(params)
	case "medium":
		l.state.mediumParams.Extend(params)
	case "texture":
		l.state.textureParams.Extend(params)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttributeTarget, target)
	}
	return nil
}

// mergeParams combines an entity's own parameters with the accumulated
// attribute parameters of its category. Attribute parameters take
// precedence on name clashes.
func mergeParams(own, inherited ParamList) ParamList {
	if inherited.IsEmpty() {
		return own
	}
	merged := own.clone()
	merged.Extend(inherited)
	return merged
}

func (l *loader) include(path string) error {
	if strings.HasSuffix(path, ".gz") {
		return fmt.Errorf("%w: compressed include %q", ErrUnsupported, path)
	}

	name := path
	if !filepath.IsAbs(name) {
		name = filepath.Join(l.baseDir, name)
	}

	Debug("include ", name)

	buf, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading include %q: %w", path, err)
	}

	l.parsers = append(l.parsers, NewParser(string(buf)))
	return nil
}

// lookupMedium resolves a medium name to its index in Scene.Mediums.
// Empty and unknown names resolve to -1.
func (l *loader) lookupMedium(name string) int {
	if name == "" {
		return -1
	}
	if idx, ok := l.mediums[name]; ok {
		return idx
	}
	return -1
}
