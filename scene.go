package pbrt4

import "fmt"

// CoordinateSystem selects the coordinate space rendering computations
// run in.
type CoordinateSystem int

const (
	// CoordSysCameraWorld translates the scene so the camera sits at
	// the origin. The pbrt default.
	CoordSysCameraWorld CoordinateSystem = iota
	CoordSysCamera
	CoordSysWorld
)

// ParseCoordinateSystem maps a rendercoordsys option value to its
// CoordinateSystem.
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	switch s {
	case "cameraworld":
		return CoordSysCameraWorld, nil
	case "camera":
		return CoordSysCamera, nil
	case "world":
		return CoordSysWorld, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCoordinateSystem, s)
}

func (c CoordinateSystem) String() string {
	switch c {
	case CoordSysCameraWorld:
		return "cameraworld"
	case CoordSysCamera:
		return "camera"
	case CoordSysWorld:
		return "world"
	}
	return fmt.Sprintf("CoordinateSystem(%d)", int(c))
}

// Options holds scene wide rendering options set through Option
// directives. Unrecognized option names are ignored.
type Options struct {
	// DisablePixelJitter forces all pixel samples through the center
	// of the pixel area.
	DisablePixelJitter bool `json:"disablepixeljitter,omitempty"`

	// DisableTextureFiltering forces point sampling at the finest MIP
	// level for all texture lookups.
	DisableTextureFiltering bool `json:"disabletexturefiltering,omitempty"`

	// DisableWavelengthJitter forces all samples within a pixel to
	// sample the same wavelengths.
	DisableWavelengthJitter bool `json:"disablewavelengthjitter,omitempty"`

	// DisplacementEdgeScale scales triangle edge lengths before the
	// refinement test when applying displacement mapping.
	DisplacementEdgeScale float32 `json:"displacementedgescale,omitempty"`

	// MSEReferenceImage is the image to compute mean squared error
	// against; MSEReferenceOut receives the per-sample results.
	MSEReferenceImage string `json:"msereferenceimage,omitempty"`
	MSEReferenceOut   string `json:"msereferenceout,omitempty"`

	// RenderingSpace is the coordinate system rendering runs in.
	RenderingSpace CoordinateSystem `json:"rendercoordsys,omitempty"`
}

func defaultOptions() Options {
	return Options{DisplacementEdgeScale: 1}
}

// apply sets the option named by param.
func (o *Options) apply(param *Param) error {
	switch param.Name {
	case "disablepixeljitter":
		return setBoolOption(&o.DisablePixelJitter, param)
	case "disabletexturefiltering":
		return setBoolOption(&o.DisableTextureFiltering, param)
	case "disablewavelengthjitter":
		return setBoolOption(&o.DisableWavelengthJitter, param)
	case "displacementedgescale":
		if f := param.Floats(); len(f) > 0 {
			o.DisplacementEdgeScale = f[0]
			return nil
		}
		return fmt.Errorf("%w: %q", ErrInvalidOptionValue, param.Name)
	case "msereferenceimage":
		return setStringOption(&o.MSEReferenceImage, param)
	case "msereferenceout":
		return setStringOption(&o.MSEReferenceOut, param)
	case "rendercoordsys":
		s := param.Strings()
		if len(s) == 0 {
			return fmt.Errorf("%w: %q", ErrInvalidOptionValue, param.Name)
		}
		space, err := ParseCoordinateSystem(s[0])
		if err != nil {
			return err
		}
		o.RenderingSpace = space
	}
	// Unknown options are not an error, newer scene files may carry
	// options this loader does not know about.
	return nil
}

func setBoolOption(dst *bool, param *Param) error {
	b := param.Bools()
	if len(b) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidOptionValue, param.Name)
	}
	*dst = b[0]
	return nil
}

func setStringOption(dst *string, param *Param) error {
	s := param.Strings()
	if len(s) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidOptionValue, param.Name)
	}
	*dst = s[0]
	return nil
}

// CameraEntity is the scene camera together with its placement.
type CameraEntity struct {
	Camera Camera `json:"camera"`

	// Transform is the camera to world transform, the inverse of the
	// transform that was current when the Camera directive ran.
	Transform Matrix `json:"transform"`

	// MediumIndex is the camera's exterior medium resolved into
	// Scene.Mediums, -1 when none was active.
	MediumIndex int `json:"mediumIndex"`
}

// TextureEntity is a named texture. Type is the texture's value type,
// float or spectrum.
type TextureEntity struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Class   string  `json:"class"`
	Texture Texture `json:"texture"`
}

// MaterialEntity is a material definition. Name is empty for inline
// Material directives.
type MaterialEntity struct {
	Name     string   `json:"name,omitempty"`
	Material Material `json:"material"`
}

// LightEntity is a light source and the transform it was created
// under.
type LightEntity struct {
	Light     Light  `json:"light"`
	Transform Matrix `json:"transform"`
}

// MediumEntity is a named participating medium.
type MediumEntity struct {
	Name      string `json:"name"`
	Medium    Medium `json:"medium"`
	Transform Matrix `json:"transform"`
}

// ShapeEntity ties a shape to the graphics state it was created under.
// Cross references are resolved indices into the Scene lists, -1 when
// absent.
type ShapeEntity struct {
	Shape              Shape  `json:"shape"`
	Transform          Matrix `json:"transform"`
	ReverseOrientation bool   `json:"reverseOrientation,omitempty"`

	MaterialIndex      int `json:"materialIndex"`
	AreaLightIndex     int `json:"areaLightIndex"`
	InsideMediumIndex  int `json:"insideMediumIndex"`
	OutsideMediumIndex int `json:"outsideMediumIndex"`
}

// Scene is a fully loaded scene description.
type Scene struct {
	Options Options `json:"options"`

	// Header singletons. When a directive appears more than once the
	// last one wins.
	Camera      *CameraEntity `json:"camera,omitempty"`
	Film        *Film         `json:"film,omitempty"`
	Sampler     *Sampler      `json:"sampler,omitempty"`
	Integrator  *Integrator   `json:"integrator,omitempty"`
	Accelerator *Accelerator  `json:"accelerator,omitempty"`

	// ColorSpace and PixelFilter names as given in the file.
	ColorSpace  string `json:"colorSpace,omitempty"`
	PixelFilter string `json:"pixelFilter,omitempty"`

	Textures   []TextureEntity  `json:"textures,omitempty"`
	Materials  []MaterialEntity `json:"materials,omitempty"`
	Lights     []LightEntity    `json:"lights,omitempty"`
	AreaLights []AreaLight      `json:"areaLights,omitempty"`
	Mediums    []MediumEntity   `json:"mediums,omitempty"`
	Shapes     []ShapeEntity    `json:"shapes,omitempty"`
}
