package pbrt4

import (
	"encoding/json"
	"fmt"
	"math"
)

// Typed entity construction. Each constructor takes a type name plus
// the merged parameter table and copies the values it needs out of it,
// applying the pbrt-v4 defaults. Constructors are pure: they never
// retain the parameter table.

// Camera projection parameters. Type selects the projection and which
// of the remaining fields apply.
type Camera struct {
	Type string `json:"type"`

	ShutterOpen  float32 `json:"shutteropen"`
	ShutterClose float32 `json:"shutterclose"`

	// perspective and orthographic
	FOV              float32 `json:"fov,omitempty"`
	LensRadius       float32 `json:"lensradius,omitempty"`
	FocalDistance    float32 `json:"focaldistance,omitempty"`
	FrameAspectRatio float32 `json:"frameaspectratio,omitempty"`

	// realistic
	LensFile         string  `json:"lensfile,omitempty"`
	ApertureDiameter float32 `json:"aperturediameter,omitempty"`
	FocusDistance    float32 `json:"focusdistance,omitempty"`
	Aperture         string  `json:"aperture,omitempty"`

	// spherical
	Mapping string `json:"mapping,omitempty"`
}

// NewCamera builds a camera of the given type.
func NewCamera(ty string, params ParamList) (Camera, error) {
	camera := Camera{
		Type:         ty,
		ShutterOpen:  params.Float("shutteropen", 0),
		ShutterClose: params.Float("shutterclose", 1),
	}

	switch ty {
	case "perspective":
		camera.FOV = params.Float("fov", 90)
		camera.LensRadius = params.Float("lensradius", 0)
		camera.FocalDistance = params.Float("focaldistance", 1e6)
		camera.FrameAspectRatio = params.Float("frameaspectratio", 0)
	case "orthographic":
		camera.LensRadius = params.Float("lensradius", 0)
		camera.FocalDistance = params.Float("focaldistance", 1e6)
		camera.FrameAspectRatio = params.Float("frameaspectratio", 0)
	case "realistic":
		camera.LensFile = stringOr(params, "lensfile", "")
		camera.ApertureDiameter = params.Float("aperturediameter", 1)
		camera.FocusDistance = params.Float("focusdistance", 10)
		camera.Aperture = stringOr(params, "aperture", "")
	case "spherical":
		camera.Mapping = stringOr(params, "mapping", "equalarea")
	default:
		return Camera{}, fmt.Errorf("%w: camera %q", ErrUnknownType, ty)
	}
	return camera, nil
}

// Film describes the image to produce.
type Film struct {
	Type string `json:"type"`

	XResolution int32      `json:"xresolution"`
	YResolution int32      `json:"yresolution"`
	CropWindow  [4]float32 `json:"cropwindow"`
	Diagonal    float32    `json:"diagonal"`
	Filename    string     `json:"filename"`

	SaveFP16          bool    `json:"savefp16"`
	ISO               float32 `json:"iso"`
	WhiteBalance      float32 `json:"whitebalance,omitempty"`
	Sensor            string  `json:"sensor"`
	MaxComponentValue float32 `json:"maxcomponentvalue,omitempty"`
}

// NewFilm builds a film of the given type.
func NewFilm(ty string, params ParamList) (Film, error) {
	switch ty {
	case "rgb", "gbuffer", "spectral":
	default:
		return Film{}, fmt.Errorf("%w: film %q", ErrUnknownType, ty)
	}

	return Film{
		Type:              ty,
		XResolution:       params.Int("xresolution", 1280),
		YResolution:       params.Int("yresolution", 720),
		CropWindow:        floats4(params, "cropwindow", [4]float32{0, 1, 0, 1}),
		Diagonal:          params.Float("diagonal", 35),
		Filename:          stringOr(params, "filename", "pbrt.exr"),
		SaveFP16:          params.Bool("savefp16", true),
		ISO:               params.Float("iso", 100),
		WhiteBalance:      params.Float("whitebalance", 0),
		Sensor:            stringOr(params, "sensor", "cie1931"),
		MaxComponentValue: params.Float("maxcomponentvalue", float32(math.Inf(1))),
	}, nil
}

// MarshalJSON omits MaxComponentValue when it holds the unbounded
// default: infinity has no JSON representation.
func (f Film) MarshalJSON() ([]byte, error) {
	type film Film
	out := film(f)
	if math.IsInf(float64(out.MaxComponentValue), 0) {
		out.MaxComponentValue = 0
	}
	return json.Marshal(out)
}

// Sampler selects the pixel sampling strategy.
type Sampler struct {
	Type string `json:"type"`

	PixelSamples int32 `json:"pixelsamples,omitempty"`
	Seed         int32 `json:"seed,omitempty"`

	// stratified
	XSamples int32 `json:"xsamples,omitempty"`
	YSamples int32 `json:"ysamples,omitempty"`
	Jitter   bool  `json:"jitter,omitempty"`

	Randomization string `json:"randomization,omitempty"`
}

// NewSampler builds a sampler of the given type.
func NewSampler(ty string, params ParamList) (Sampler, error) {
	sampler := Sampler{Type: ty, Seed: params.Int("seed", 0)}

	switch ty {
	case "stratified":
		sampler.XSamples = params.Int("xsamples", 4)
		sampler.YSamples = params.Int("ysamples", 4)
		sampler.Jitter = params.Bool("jitter", true)
	case "halton":
		sampler.PixelSamples = params.Int("pixelsamples", 16)
		sampler.Randomization = stringOr(params, "randomization", "permutedigits")
	case "paddedsobol", "sobol", "zsobol":
		sampler.PixelSamples = params.Int("pixelsamples", 16)
		sampler.Randomization = stringOr(params, "randomization", "fastowen")
	case "independent", "pmj02bn":
		sampler.PixelSamples = params.Int("pixelsamples", 16)
	default:
		return Sampler{}, fmt.Errorf("%w: sampler %q", ErrUnknownType, ty)
	}
	return sampler, nil
}

// Integrator selects the light transport algorithm.
type Integrator struct {
	Type string `json:"type"`

	MaxDepth     int32  `json:"maxdepth,omitempty"`
	LightSampler string `json:"lightsampler,omitempty"`
	Regularize   bool   `json:"regularize,omitempty"`
}

// NewIntegrator builds an integrator of the given type.
func NewIntegrator(ty string, params ParamList) (Integrator, error) {
	switch ty {
	case "path", "volpath", "simplepath", "simplevolpath", "randomwalk",
		"bdpt", "mlt", "sppm", "lightpath", "ambientocclusion":
	default:
		return Integrator{}, fmt.Errorf("%w: integrator %q", ErrUnknownType, ty)
	}

	return Integrator{
		Type:         ty,
		MaxDepth:     params.Int("maxdepth", 5),
		LightSampler: stringOr(params, "lightsampler", "bvh"),
		Regularize:   params.Bool("regularize", false),
	}, nil
}

// Accelerator selects the ray intersection acceleration structure.
type Accelerator struct {
	Type string `json:"type"`

	// bvh
	MaxNodePrims int32  `json:"maxnodeprims,omitempty"`
	SplitMethod  string `json:"splitmethod,omitempty"`

	// kdtree
	IntersectCost int32   `json:"intersectcost,omitempty"`
	TraversalCost int32   `json:"traversalcost,omitempty"`
	EmptyBonus    float32 `json:"emptybonus,omitempty"`
	MaxPrims      int32   `json:"maxprims,omitempty"`
	MaxDepth      int32   `json:"maxdepth,omitempty"`
}

// NewAccelerator builds an accelerator of the given type.
func NewAccelerator(ty string, params ParamList) (Accelerator, error) {
	accel := Accelerator{Type: ty}

	switch ty {
	case "bvh":
		accel.MaxNodePrims = params.Int("maxnodeprims", 4)
		accel.SplitMethod = stringOr(params, "splitmethod", "sah")
	case "kdtree":
		accel.IntersectCost = params.Int("intersectcost", 5)
		accel.TraversalCost = params.Int("traversalcost", 1)
		accel.EmptyBonus = params.Float("emptybonus", 0.5)
		accel.MaxPrims = params.Int("maxprims", 1)
		accel.MaxDepth = params.Int("maxdepth", -1)
	default:
		return Accelerator{}, fmt.Errorf("%w: accelerator %q", ErrUnknownType, ty)
	}
	return accel, nil
}

// Shape geometry parameters.
type Shape struct {
	Type string `json:"type"`

	Alpha float32 `json:"alpha,omitempty"`

	// sphere, cylinder, disk
	Radius float32 `json:"radius,omitempty"`
	ZMin   float32 `json:"zmin,omitempty"`
	ZMax   float32 `json:"zmax,omitempty"`
	PhiMax float32 `json:"phimax,omitempty"`

	// disk
	Height      float32 `json:"height,omitempty"`
	InnerRadius float32 `json:"innerradius,omitempty"`

	// trianglemesh and bilinearmesh
	Indices []int32   `json:"indices,omitempty"`
	P       []float32 `json:"P,omitempty"`
	N       []float32 `json:"N,omitempty"`
	S       []float32 `json:"S,omitempty"`
	UV      []float32 `json:"uv,omitempty"`

	// plymesh
	Filename string `json:"filename,omitempty"`
}

// NewShape builds a shape of the given type.
func NewShape(ty string, params ParamList) (Shape, error) {
	shape := Shape{Type: ty, Alpha: params.Float("alpha", 1)}

	switch ty {
	case "sphere":
		shape.Radius = params.Float("radius", 1)
		shape.ZMin = params.Float("zmin", -shape.Radius)
		shape.ZMax = params.Float("zmax", shape.Radius)
		shape.PhiMax = params.Float("phimax", 360)
	case "disk":
		shape.Height = params.Float("height", 0)
		shape.Radius = params.Float("radius", 1)
		shape.InnerRadius = params.Float("innerradius", 0)
		shape.PhiMax = params.Float("phimax", 360)
	case "cylinder":
		shape.Radius = params.Float("radius", 1)
		shape.ZMin = params.Float("zmin", -1)
		shape.ZMax = params.Float("zmax", 1)
		shape.PhiMax = params.Float("phimax", 360)
	case "trianglemesh", "bilinearmesh":
		shape.Indices = append([]int32(nil), params.Ints("indices")...)
		shape.P = append([]float32(nil), params.Floats("P")...)
		shape.N = append([]float32(nil), params.Floats("N")...)
		shape.S = append([]float32(nil), params.Floats("S")...)
		shape.UV = append([]float32(nil), params.Floats("uv")...)
	case "plymesh":
		shape.Filename = stringOr(params, "filename", "")
	default:
		return Shape{}, fmt.Errorf("%w: shape %q", ErrUnknownType, ty)
	}
	return shape, nil
}

// Light describes a light source.
type Light struct {
	Type string `json:"type"`

	Scale float32 `json:"scale,omitempty"`

	// L is the radiance of distant and infinite lights, I the
	// intensity of point-like lights. Nil when the scene relies on the
	// renderer's default.
	L *Spectrum `json:"L,omitempty"`
	I *Spectrum `json:"I,omitempty"`

	From [3]float32 `json:"from,omitempty"`
	To   [3]float32 `json:"to,omitempty"`

	Filename string `json:"filename,omitempty"`

	// spot
	ConeAngle      float32 `json:"coneangle,omitempty"`
	ConeDeltaAngle float32 `json:"conedeltaangle,omitempty"`
}

// NewLight builds a light of the given type.
func NewLight(ty string, params ParamList) (Light, error) {
	light := Light{Type: ty, Scale: params.Float("scale", 1)}

	switch ty {
	case "distant":
		light.L = spectrumOf(params, "L")
		light.From = floats3(params, "from", [3]float32{0, 0, 0})
		light.To = floats3(params, "to", [3]float32{0, 0, 1})
	case "infinite":
		light.L = spectrumOf(params, "L")
		light.Filename = stringOr(params, "filename", "")
	case "point":
		light.I = spectrumOf(params, "I")
		light.From = floats3(params, "from", [3]float32{0, 0, 0})
	case "spot":
		light.I = spectrumOf(params, "I")
		light.From = floats3(params, "from", [3]float32{0, 0, 0})
		light.To = floats3(params, "to", [3]float32{0, 0, 1})
		light.ConeAngle = params.Float("coneangle", 30)
		light.ConeDeltaAngle = params.Float("conedeltaangle", 5)
	case "goniometric", "projection":
		light.I = spectrumOf(params, "I")
		light.Filename = stringOr(params, "filename", "")
	default:
		return Light{}, fmt.Errorf("%w: light %q", ErrUnknownType, ty)
	}
	return light, nil
}

// AreaLight turns the shapes that follow it into emitters.
type AreaLight struct {
	Type string `json:"type"`

	L        *Spectrum `json:"L,omitempty"`
	TwoSided bool      `json:"twosided,omitempty"`
	Scale    float32   `json:"scale,omitempty"`
}

// NewAreaLight builds an area light of the given type.
func NewAreaLight(ty string, params ParamList) (AreaLight, error) {
	if ty != "diffuse" {
		return AreaLight{}, fmt.Errorf("%w: area light %q", ErrUnknownType, ty)
	}
	return AreaLight{
		Type:     ty,
		L:        spectrumOf(params, "L"),
		TwoSided: params.Bool("twosided", false),
		Scale:    params.Float("scale", 1),
	}, nil
}

// TextureRef is a parameter that accepts either a constant value or a
// reference to a named texture. TextureIndex points into
// Scene.Textures and is -1 for constants; unknown texture names also
// resolve to -1.
type TextureRef struct {
	TextureIndex int        `json:"textureIndex"`
	Value        [3]float32 `json:"value"`
}

// Material surface description. Type "" is the boundary material used
// to delimit participating media without a surface response.
type Material struct {
	Type string `json:"type"`

	Reflectance   *TextureRef `json:"reflectance,omitempty"`
	Transmittance *TextureRef `json:"transmittance,omitempty"`
	Roughness     *TextureRef `json:"roughness,omitempty"`

	Eta            float32 `json:"eta,omitempty"`
	RemapRoughness bool    `json:"remaproughness,omitempty"`

	// measured
	Filename string `json:"filename,omitempty"`

	// mix
	Materials []string `json:"materials,omitempty"`
	Amount    float32  `json:"amount,omitempty"`
}

// NewMaterial builds a material of the given type, resolving texture
// valued parameters through the name to index map.
func NewMaterial(ty string, params ParamList, textures map[string]int) (Material, error) {
	material := Material{Type: ty}

	switch ty {
	case "", "none", "interface":
		// No surface response.
		material.Type = ""
		return material, nil
	case "diffuse":
		material.Reflectance = textureRefOf(params, "reflectance", textures, [3]float32{0.5, 0.5, 0.5})
	case "coateddiffuse":
		material.Reflectance = textureRefOf(params, "reflectance", textures, [3]float32{0.5, 0.5, 0.5})
		material.Roughness = textureRefOf(params, "roughness", textures, [3]float32{0, 0, 0})
		material.RemapRoughness = params.Bool("remaproughness", true)
	case "conductor", "coatedconductor":
		material.Roughness = textureRefOf(params, "roughness", textures, [3]float32{0, 0, 0})
		material.RemapRoughness = params.Bool("remaproughness", true)
	case "dielectric", "thindielectric":
		material.Eta = params.Float("eta", 1.5)
		material.Roughness = textureRefOf(params, "roughness", textures, [3]float32{0, 0, 0})
		material.RemapRoughness = params.Bool("remaproughness", true)
	case "diffusetransmission":
		material.Reflectance = textureRefOf(params, "reflectance", textures, [3]float32{0.25, 0.25, 0.25})
		material.Transmittance = textureRefOf(params, "transmittance", textures, [3]float32{0.25, 0.25, 0.25})
	case "mix":
		material.Materials = append([]string(nil), params.Strings("materials")...)
		material.Amount = params.Float("amount", 0.5)
	case "measured":
		material.Filename = stringOr(params, "filename", "")
	case "hair", "subsurface":
		// All parameters optional, nothing to capture beyond the type.
	default:
		return Material{}, fmt.Errorf("%w: material %q", ErrUnknownType, ty)
	}
	return material, nil
}

// Texture value source of a given class.
type Texture struct {
	Class string `json:"class"`

	// constant
	Value float32 `json:"value,omitempty"`

	// scale, mix and checkerboard inputs
	Tex    *TextureRef `json:"tex,omitempty"`
	Tex1   *TextureRef `json:"tex1,omitempty"`
	Tex2   *TextureRef `json:"tex2,omitempty"`
	Scale  float32     `json:"scale,omitempty"`
	Amount float32     `json:"amount,omitempty"`

	// imagemap and uv mapped classes
	Filename string  `json:"filename,omitempty"`
	UScale   float32 `json:"uscale,omitempty"`
	VScale   float32 `json:"vscale,omitempty"`
	UDelta   float32 `json:"udelta,omitempty"`
	VDelta   float32 `json:"vdelta,omitempty"`
	WrapMode string  `json:"wrap,omitempty"`
}

// NewTexture builds a texture of the given class, resolving referenced
// textures through the name to index map.
func NewTexture(class string, params ParamList, textures map[string]int) (Texture, error) {
	texture := Texture{Class: class}

	switch class {
	case "constant":
		texture.Value = params.Float("value", 1)
	case "scale":
		texture.Tex = textureRefOf(params, "tex", textures, [3]float32{1, 1, 1})
		texture.Scale = params.Float("scale", 1)
	case "mix":
		texture.Tex1 = textureRefOf(params, "tex1", textures, [3]float32{0, 0, 0})
		texture.Tex2 = textureRefOf(params, "tex2", textures, [3]float32{1, 1, 1})
		texture.Amount = params.Float("amount", 0.5)
	case "checkerboard":
		texture.Tex1 = textureRefOf(params, "tex1", textures, [3]float32{1, 1, 1})
		texture.Tex2 = textureRefOf(params, "tex2", textures, [3]float32{0, 0, 0})
		texture.UScale = params.Float("uscale", 1)
		texture.VScale = params.Float("vscale", 1)
		texture.UDelta = params.Float("udelta", 0)
		texture.VDelta = params.Float("vdelta", 0)
	case "imagemap":
		texture.Filename = stringOr(params, "filename", "")
		texture.UScale = params.Float("uscale", 1)
		texture.VScale = params.Float("vscale", 1)
		texture.UDelta = params.Float("udelta", 0)
		texture.VDelta = params.Float("vdelta", 0)
		texture.WrapMode = stringOr(params, "wrap", "repeat")
		texture.Scale = params.Float("scale", 1)
	case "directionmix", "dots", "fbm", "marble", "ptex", "windy", "wrinkled":
		// Recognized classes whose parameters the scene model does not
		// capture.
	default:
		return Texture{}, fmt.Errorf("%w: texture %q", ErrUnknownType, class)
	}
	return texture, nil
}

// Medium participating media description.
type Medium struct {
	Type string `json:"type"`

	SigmaA *Spectrum `json:"sigma_a,omitempty"`
	SigmaS *Spectrum `json:"sigma_s,omitempty"`
	G      float32   `json:"g,omitempty"`
	Scale  float32   `json:"scale,omitempty"`

	// grid mediums
	NX      int32      `json:"nx,omitempty"`
	NY      int32      `json:"ny,omitempty"`
	NZ      int32      `json:"nz,omitempty"`
	P0      [3]float32 `json:"p0,omitempty"`
	P1      [3]float32 `json:"p1,omitempty"`
	Density []float32  `json:"density,omitempty"`

	// nanovdb
	Filename string `json:"filename,omitempty"`
}

// NewMedium builds a medium of the given type.
func NewMedium(ty string, params ParamList) (Medium, error) {
	medium := Medium{
		Type:   ty,
		SigmaA: spectrumOf(params, "sigma_a"),
		SigmaS: spectrumOf(params, "sigma_s"),
		G:      params.Float("g", 0),
		Scale:  params.Float("scale", 1),
	}

	switch ty {
	case "homogeneous":
	case "uniformgrid":
		medium.NX = params.Int("nx", 1)
		medium.NY = params.Int("ny", 1)
		medium.NZ = params.Int("nz", 1)
		medium.P0 = floats3(params, "p0", [3]float32{0, 0, 0})
		medium.P1 = floats3(params, "p1", [3]float32{1, 1, 1})
		medium.Density = append([]float32(nil), params.Floats("density")...)
	case "rgbgrid", "cloud":
		medium.P0 = floats3(params, "p0", [3]float32{0, 0, 0})
		medium.P1 = floats3(params, "p1", [3]float32{1, 1, 1})
	case "nanovdb":
		medium.Filename = stringOr(params, "filename", "")
	default:
		return Medium{}, fmt.Errorf("%w: medium %q", ErrUnknownType, ty)
	}
	return medium, nil
}

func stringOr(params ParamList, name, def string) string {
	if s, ok := params.String(name); ok {
		return s
	}
	return def
}

func floats3(params ParamList, name string, def [3]float32) [3]float32 {
	if v := params.Floats(name); len(v) >= 3 {
		return [3]float32{v[0], v[1], v[2]}
	}
	return def
}

func floats4(params ParamList, name string, def [4]float32) [4]float32 {
	if v := params.Floats(name); len(v) >= 4 {
		return [4]float32{v[0], v[1], v[2], v[3]}
	}
	return def
}

// spectrumOf reads a spectrum valued parameter, nil when absent or not
// interpretable.
func spectrumOf(params ParamList, name string) *Spectrum {
	param := params.Get(name)
	if param == nil {
		return nil
	}
	if s, ok := param.AsSpectrum(); ok {
		return &s
	}
	return nil
}

// textureRefOf reads a parameter that is either a texture reference, an
// rgb triple or a single float, falling back to def.
func textureRefOf(params ParamList, name string, textures map[string]int, def [3]float32) *TextureRef {
	ref := &TextureRef{TextureIndex: -1, Value: def}

	param := params.Get(name)
	if param == nil {
		return ref
	}

	switch param.Type {
	case ParamTypeTexture:
		// Unknown texture names resolve to no texture, like unknown
		// material names do.
		if names := param.Strings(); len(names) > 0 {
			if idx, ok := textures[names[0]]; ok {
				ref.TextureIndex = idx
			}
		}
	case ParamTypeRGB, ParamTypeSpectrum:
		if f := param.Floats(); len(f) >= 3 {
			ref.Value = [3]float32{f[0], f[1], f[2]}
		}
	case ParamTypeFloat:
		if f := param.Floats(); len(f) > 0 {
			ref.Value = [3]float32{f[0], f[0], f[0]}
		}
	}
	return ref
}
