package pbrt4

import "fmt"

// ElementKind identifies a directive. The set is closed: the scene
// description language has a fixed keyword vocabulary.
type ElementKind int

const (
	ElementInclude ElementKind = iota
	ElementImport
	ElementOption
	ElementFilm
	ElementColorSpace
	ElementCamera
	ElementSampler
	ElementIntegrator
	ElementAccelerator
	ElementCoordinateSystem
	ElementCoordSysTransform
	ElementPixelFilter
	ElementIdentity
	ElementTranslate
	ElementScale
	ElementRotate
	ElementLookAt
	ElementTransform
	ElementConcatTransform
	ElementTransformTimes
	ElementActiveTransform
	ElementReverseOrientation
	ElementWorldBegin
	ElementAttributeBegin
	ElementAttributeEnd
	ElementAttribute
	ElementLightSource
	ElementAreaLightSource
	ElementMaterial
	ElementMakeNamedMaterial
	ElementNamedMaterial
	ElementTexture
	ElementShape
	ElementObjectBegin
	ElementObjectEnd
	ElementObjectInstance
	ElementMakeNamedMedium
	ElementMediumInterface
)

// elementNames holds the directive keywords, indexed by ElementKind.
var elementNames = [...]string{
	"Include",
	"Import",
	"Option",
	"Film",
	"ColorSpace",
	"Camera",
	"Sampler",
	"Integrator",
	"Accelerator",
	"CoordinateSystem",
	"CoordSysTransform",
	"PixelFilter",
	"Identity",
	"Translate",
	"Scale",
	"Rotate",
	"LookAt",
	"Transform",
	"ConcatTransform",
	"TransformTimes",
	"ActiveTransform",
	"ReverseOrientation",
	"WorldBegin",
	"AttributeBegin",
	"AttributeEnd",
	"Attribute",
	"LightSource",
	"AreaLightSource",
	"Material",
	"MakeNamedMaterial",
	"NamedMaterial",
	"Texture",
	"Shape",
	"ObjectBegin",
	"ObjectEnd",
	"ObjectInstance",
	"MakeNamedMedium",
	"MediumInterface",
}

// directives maps a keyword to its ElementKind.
var directives = make(map[string]ElementKind, len(elementNames))

func init() {
	for i, name := range elementNames {
		directives[name] = ElementKind(i)
	}
}

func (k ElementKind) String() string {
	if k >= 0 && int(k) < len(elementNames) {
		return elementNames[k]
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

// Element is one parsed directive. Kind selects which of the remaining
// fields carry the directive's arguments; the rest stay at their zero
// values.
type Element struct {
	Kind ElementKind

	// Path of the file named by Include and Import.
	Path string

	// Type name of typed resource directives (Film "rgb",
	// Shape "sphere", ColorSpace, ActiveTransform).
	Type string

	// Name of named directives: CoordinateSystem, CoordSysTransform,
	// PixelFilter, Texture, MakeNamedMaterial, NamedMaterial,
	// MakeNamedMedium, ObjectBegin, ObjectInstance.
	Name string

	// Class of a Texture directive, e.g. imagemap.
	Class string

	// Target category of an Attribute directive.
	Target string

	// Interior and exterior medium names of a MediumInterface.
	Interior string
	Exterior string

	// Values holds the fixed float arguments of transform directives:
	// 3 for Translate and Scale, 4 for Rotate, 9 for LookAt, 16 for
	// Transform and ConcatTransform, 2 for TransformTimes.
	Values []float32

	// Param is the single parameter of an Option directive.
	Param *Param

	// Params is the trailing parameter list.
	Params ParamList
}
