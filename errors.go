package pbrt4

import "errors"

// Errors reported while loading a scene. Loading is fail-fast: the
// first error aborts the whole load and no partial scene is returned.
// Wrapped values remain matchable with errors.Is. Exhaustion of a
// parser's token stream is reported as io.EOF, which the loader treats
// as the normal end of the current file, not as a failure.
var (
	// ErrNoToken is returned when a directive needs another token but
	// the stream ended.
	ErrNoToken = errors.New("token expected, got end of stream")

	// ErrInvalidToken is returned for tokens that fail basic
	// well-formedness checks.
	ErrInvalidToken = errors.New("invalid token")

	ErrParseFloat = errors.New("unable to parse float")
	ErrParseInt   = errors.New("unable to parse integer")
	ErrParseBool  = errors.New("unable to parse bool")

	ErrUnknownDirective = errors.New("unknown directive")

	// ErrInvalidString is returned when a quoted string was expected.
	ErrInvalidString = errors.New("expected string token")

	ErrUnexpectedToken = errors.New("unexpected token")

	ErrInvalidParamType   = errors.New("invalid parameter type")
	ErrInvalidParamName   = errors.New("invalid parameter declaration")
	ErrDuplicateParamName = errors.New("duplicated parameter name")

	// ErrInvalidOptionValue is returned when an Option value does not
	// match the option's expected type.
	ErrInvalidOptionValue = errors.New("unable to parse option value")

	// ErrUnknownCoordinateSystem is returned for a CoordSysTransform
	// naming a coordinate system that was never recorded, and for an
	// unrecognized rendering space name.
	ErrUnknownCoordinateSystem = errors.New("unknown coordinate system")

	ErrUnknownAttributeTarget = errors.New("unknown attribute target")

	// ErrUnmatchedAttributeEnd is returned for an AttributeEnd with no
	// open attribute scope.
	ErrUnmatchedAttributeEnd = errors.New("AttributeEnd without matching AttributeBegin")

	// ErrUnbalancedAttributes is returned when attribute scopes remain
	// open at the end of the scene description.
	ErrUnbalancedAttributes = errors.New("unbalanced attribute scopes")

	ErrDuplicateWorldBegin = errors.New("duplicate WorldBegin")
	ErrMissingWorldBegin   = errors.New("missing WorldBegin")

	// ErrUnknownType is returned when a typed entity names a kind that
	// does not exist, e.g. Shape "cube".
	ErrUnknownType = errors.New("unknown entity type")

	// ErrUnsupported is returned for directives outside the supported
	// subset: object instancing, Import, animated transforms and
	// compressed includes.
	ErrUnsupported = errors.New("unsupported directive")
)
