package pbrt4

import (
	"fmt"
	"strings"
)

// ParamType is the declared type of a parameter.
type ParamType int

const (
	ParamTypeBool ParamType = iota
	ParamTypeFloat
	ParamTypeInt
	ParamTypePoint2
	ParamTypeVector2
	ParamTypePoint3
	ParamTypeVector3
	ParamTypeNormal3
	ParamTypeSpectrum
	ParamTypeRGB
	ParamTypeBlackbody
	ParamTypeString
	ParamTypeTexture
)

var paramTypeNames = map[string]ParamType{
	"bool":      ParamTypeBool,
	"float":     ParamTypeFloat,
	"integer":   ParamTypeInt,
	"point2":    ParamTypePoint2,
	"vector2":   ParamTypeVector2,
	"point3":    ParamTypePoint3,
	"vector3":   ParamTypeVector3,
	"normal3":   ParamTypeNormal3,
	"spectrum":  ParamTypeSpectrum,
	"rgb":       ParamTypeRGB,
	"blackbody": ParamTypeBlackbody,
	"string":    ParamTypeString,
	"texture":   ParamTypeTexture,
}

// ParseParamType maps a type keyword to its ParamType.
func ParseParamType(s string) (ParamType, error) {
	ty, ok := paramTypeNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParamType, s)
	}
	return ty, nil
}

func (ty ParamType) String() string {
	for name, t := range paramTypeNames {
		if t == ty {
			return name
		}
	}
	return fmt.Sprintf("ParamType(%d)", int(ty))
}

// container identifies the value slice a parameter type stores into.
type container int

const (
	containerFloats container = iota
	containerInts
	containerStrings
	containerBools
)

func (ty ParamType) container() container {
	switch ty {
	case ParamTypeBool:
		return containerBools
	case ParamTypeInt, ParamTypeBlackbody:
		return containerInts
	case ParamTypeString, ParamTypeTexture:
		return containerStrings
	default:
		return containerFloats
	}
}

// SpectrumKind tags a Spectrum value.
type SpectrumKind int

const (
	// SpectrumRGB is an "rgb L" [ r g b ] value.
	SpectrumRGB SpectrumKind = iota
	// SpectrumBlackbody is a "blackbody L" temperature in Kelvin.
	SpectrumBlackbody
)

// Spectrum is a parameter value interpreted as either an RGB triple or
// a blackbody temperature, tagged by Kind.
type Spectrum struct {
	Kind      SpectrumKind `json:"kind"`
	RGB       [3]float32   `json:"rgb,omitempty"`
	Blackbody int32        `json:"blackbody,omitempty"`
}

// Param is a single parsed parameter: a name, a declared type, and one
// or more values. The value container is selected by the declared type
// at construction and never changes.
type Param struct {
	Name string
	Type ParamType

	floats []float32
	ints   []int32
	strs   []string
	bools  []bool
}

// NewParam creates a parameter from its "type name" declaration, the
// content of the quoted string that introduces every parameter.
func NewParam(typeAndName string) (*Param, error) {
	fields := strings.Fields(typeAndName)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidParamName, typeAndName)
	}

	ty, err := ParseParamType(fields[0])
	if err != nil {
		return nil, err
	}

	return &Param{Name: fields[1], Type: ty}, nil
}

// AddToken coerces one value token into the parameter's container.
func (p *Param) AddToken(tok Token) error {
	switch p.Type.container() {
	case containerFloats:
		v, err := tok.Float()
		if err != nil {
			return err
		}
		p.floats = append(p.floats, v)
	case containerInts:
		v, err := tok.Int()
		if err != nil {
			return err
		}
		p.ints = append(p.ints, v)
	case containerStrings:
		s, ok := tok.Unquote()
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidToken, tok.Value())
		}
		p.strs = append(p.strs, s)
	case containerBools:
		v, err := tok.Bool()
		if err != nil {
			return err
		}
		p.bools = append(p.bools, v)
	}
	return nil
}

// Floats returns the parameter values when the parameter stores floats,
// nil otherwise.
func (p *Param) Floats() []float32 {
	if p.Type.container() != containerFloats {
		return nil
	}
	return p.floats
}

func (p *Param) Ints() []int32 {
	if p.Type.container() != containerInts {
		return nil
	}
	return p.ints
}

func (p *Param) Strings() []string {
	if p.Type.container() != containerStrings {
		return nil
	}
	return p.strs
}

func (p *Param) Bools() []bool {
	if p.Type.container() != containerBools {
		return nil
	}
	return p.bools
}

// AsRGB returns the value of an rgb parameter holding exactly three
// floats.
func (p *Param) AsRGB() ([3]float32, bool) {
	if p.Type != ParamTypeRGB {
		return [3]float32{}, false
	}
	f := p.Floats()
	if len(f) != 3 {
		return [3]float32{}, false
	}
	return [3]float32{f[0], f[1], f[2]}, true
}

// AsSpectrum interprets an rgb parameter as an RGB spectrum or a
// blackbody parameter as a color temperature.
func (p *Param) AsSpectrum() (Spectrum, bool) {
	switch p.Type {
	case ParamTypeRGB:
		rgb, ok := p.AsRGB()
		if !ok {
			return Spectrum{}, false
		}
		return Spectrum{Kind: SpectrumRGB, RGB: rgb}, true
	case ParamTypeBlackbody:
		ints := p.Ints()
		if len(ints) == 0 {
			return Spectrum{}, false
		}
		return Spectrum{Kind: SpectrumBlackbody, Blackbody: ints[0]}, true
	}
	return Spectrum{}, false
}

// ParamList is a collection of parameters keyed by name. The zero
// value is an empty list ready for use.
type ParamList struct {
	params map[string]*Param
}

// Add inserts a parameter, failing if the name is already present.
func (l *ParamList) Add(p *Param) error {
	if _, ok := l.params[p.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateParamName, p.Name)
	}
	if l.params == nil {
		l.params = make(map[string]*Param)
	}
	l.params[p.Name] = p
	return nil
}

// Get returns the named parameter or nil.
func (l ParamList) Get(name string) *Param {
	return l.params[name]
}

func (l ParamList) Len() int {
	return len(l.params)
}

func (l ParamList) IsEmpty() bool {
	return len(l.params) == 0
}

// Floats returns the values of the named float parameter, nil when the
// parameter is absent or stores a different container.
func (l ParamList) Floats(name string) []float32 {
	if p := l.Get(name); p != nil {
		return p.Floats()
	}
	return nil
}

func (l ParamList) Ints(name string) []int32 {
	if p := l.Get(name); p != nil {
		return p.Ints()
	}
	return nil
}

func (l ParamList) Strings(name string) []string {
	if p := l.Get(name); p != nil {
		return p.Strings()
	}
	return nil
}

func (l ParamList) Bools(name string) []bool {
	if p := l.Get(name); p != nil {
		return p.Bools()
	}
	return nil
}

// Float returns the first value of the named float parameter, or def.
func (l ParamList) Float(name string, def float32) float32 {
	if f := l.Floats(name); len(f) > 0 {
		return f[0]
	}
	return def
}

func (l ParamList) Int(name string, def int32) int32 {
	if v := l.Ints(name); len(v) > 0 {
		return v[0]
	}
	return def
}

func (l ParamList) Bool(name string, def bool) bool {
	if b := l.Bools(name); len(b) > 0 {
		return b[0]
	}
	return def
}

// String returns the first value of the named string parameter.
func (l ParamList) String(name string) (string, bool) {
	if s := l.Strings(name); len(s) > 0 {
		return s[0], true
	}
	return "", false
}

// Extend inserts all of other's parameters, overwriting entries that
// share a name. This is the merge primitive behind attribute
// inheritance: extending a directive's own list with the inherited one
// makes the inherited entries win.
func (l *ParamList) Extend(other ParamList) {
	if other.IsEmpty() {
		return
	}
	if l.params == nil {
		l.params = make(map[string]*Param, len(other.params))
	}
	for name, param := range other.params {
		l.params[name] = param
	}
}

// clone returns an independent copy of the list. Params themselves are
// immutable once parsed and stay shared.
func (l ParamList) clone() ParamList {
	if l.params == nil {
		return ParamList{}
	}
	params := make(map[string]*Param, len(l.params))
	for name, param := range l.params {
		params[name] = param
	}
	return ParamList{params: params}
}
