package pbrt4

import (
	"fmt"
	"io"
)

// Parser reads directives out of one scene description buffer.
type Parser struct {
	tokenizer *Tokenizer
}

// NewParser creates a parser over src. Comments are skipped.
func NewParser(src string) *Parser {
	tokenizer := NewTokenizer(src)
	tokenizer.SkipComments()
	return &Parser{tokenizer: tokenizer}
}

// ParseNext parses the next directive. It returns io.EOF once the
// buffer is exhausted.
func (p *Parser) ParseNext() (*Element, error) {
	tok, ok := p.tokenizer.Next()
	if !ok {
		return nil, io.EOF
	}

	kind, ok := directives[tok.Value()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirective, tok.Value())
	}

	elem := &Element{Kind: kind}

	var err error
	switch kind {
	case ElementInclude, ElementImport:
		elem.Path, err = p.readString()

	case ElementOption:
		elem.Param, err = p.readParam()

	case ElementFilm, ElementCamera, ElementSampler, ElementIntegrator,
		ElementAccelerator, ElementLightSource, ElementAreaLightSource,
		ElementMaterial, ElementShape:
		err = p.parseTyped(elem)

	case ElementColorSpace, ElementActiveTransform:
		elem.Type, err = p.readString()

	case ElementCoordinateSystem, ElementCoordSysTransform,
		ElementPixelFilter, ElementNamedMaterial, ElementObjectBegin,
		ElementObjectInstance:
		elem.Name, err = p.readString()

	case ElementMakeNamedMaterial, ElementMakeNamedMedium:
		err = p.parseNamed(elem)

	case ElementIdentity, ElementReverseOrientation, ElementWorldBegin,
		ElementAttributeBegin, ElementAttributeEnd, ElementObjectEnd:
		// No arguments.

	case ElementTranslate, ElementScale:
		elem.Values, err = p.readFloats(3)

	case ElementRotate:
		elem.Values, err = p.readFloats(4)

	case ElementLookAt:
		elem.Values, err = p.readFloats(9)

	case ElementTransform, ElementConcatTransform:
		elem.Values, err = p.readMatrix()

	case ElementTransformTimes:
		elem.Values, err = p.readFloats(2)

	case ElementAttribute:
		err = p.parseAttribute(elem)

	case ElementTexture:
		err = p.parseTexture(elem)

	case ElementMediumInterface:
		err = p.parseMediumInterface(elem)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return elem, nil
}

// parseTyped handles the common `Directive "type" parameter-list` form.
func (p *Parser) parseTyped(elem *Element) error {
	ty, err := p.readString()
	if err != nil {
		return err
	}
	params, err := p.readParamList()
	if err != nil {
		return err
	}
	elem.Type = ty
	elem.Params = params
	return nil
}

// parseNamed handles the `Directive "name" parameter-list` form used by
// MakeNamedMaterial and MakeNamedMedium.
func (p *Parser) parseNamed(elem *Element) error {
	name, err := p.readString()
	if err != nil {
		return err
	}
	params, err := p.readParamList()
	if err != nil {
		return err
	}
	elem.Name = name
	elem.Params = params
	return nil
}

// parseAttribute handles `Attribute "target" parameter-list`.
func (p *Parser) parseAttribute(elem *Element) error {
	target, err := p.readString()
	if err != nil {
		return err
	}
	params, err := p.readParamList()
	if err != nil {
		return err
	}
	elem.Target = target
	elem.Params = params
	return nil
}

// parseTexture handles `Texture "name" "type" "class" parameter-list`.
func (p *Parser) parseTexture(elem *Element) error {
	var err error
	if elem.Name, err = p.readString(); err != nil {
		return err
	}
	if elem.Type, err = p.readString(); err != nil {
		return err
	}
	if elem.Class, err = p.readString(); err != nil {
		return err
	}
	elem.Params, err = p.readParamList()
	return err
}

// parseMediumInterface handles `MediumInterface "interior" "exterior"`.
func (p *Parser) parseMediumInterface(elem *Element) error {
	var err error
	if elem.Interior, err = p.readString(); err != nil {
		return err
	}
	elem.Exterior, err = p.readString()
	return err
}

// readToken returns the next token, requiring one to exist and to be
// well formed.
func (p *Parser) readToken() (Token, error) {
	tok, ok := p.tokenizer.Next()
	if !ok {
		return Token{}, ErrNoToken
	}
	if !tok.IsValid() {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidToken, tok.Value())
	}
	return tok, nil
}

func (p *Parser) readFloat() (float32, error) {
	tok, err := p.readToken()
	if err != nil {
		return 0, err
	}
	return tok.Float()
}

func (p *Parser) readFloats(n int) ([]float32, error) {
	values := make([]float32, n)
	for i := range values {
		v, err := p.readFloat()
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// readMatrix reads 16 floats enclosed in brackets.
func (p *Parser) readMatrix() ([]float32, error) {
	if err := p.skipBracket(); err != nil {
		return nil, err
	}
	m, err := p.readFloats(16)
	if err != nil {
		return nil, err
	}
	if err := p.skipBracket(); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) skipBracket() error {
	tok, ok := p.tokenizer.Next()
	if !ok {
		return fmt.Errorf("%w: end of stream, bracket expected", ErrUnexpectedToken)
	}
	if !tok.IsOpenBracket() && !tok.IsCloseBracket() {
		return fmt.Errorf("%w: %q, bracket expected", ErrUnexpectedToken, tok.Value())
	}
	return nil
}

// readString reads a quoted string and unquotes it.
func (p *Parser) readString() (string, error) {
	tok, err := p.readToken()
	if err != nil {
		return "", err
	}
	s, ok := tok.Unquote()
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidString, tok.Value())
	}
	return s, nil
}

// readParam reads one parameter: a quoted "type name" declaration
// followed by either a single value token or a bracketed value list.
func (p *Parser) readParam() (*Param, error) {
	typeAndName, err := p.readString()
	if err != nil {
		return nil, err
	}

	param, err := NewParam(typeAndName)
	if err != nil {
		return nil, err
	}

	tok, err := p.readToken()
	if err != nil {
		return nil, err
	}

	if !tok.IsOpenBracket() {
		if err := param.AddToken(tok); err != nil {
			return nil, err
		}
		return param, nil
	}

	for {
		tok, err = p.readToken()
		if err != nil {
			return nil, err
		}
		if tok.IsCloseBracket() {
			break
		}
		// A directive keyword in the middle of a value list means the
		// closing bracket is missing.
		if tok.IsDirective() {
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedToken, tok.Value())
		}
		if err := param.AddToken(tok); err != nil {
			return nil, err
		}
	}

	return param, nil
}

// readParamList reads parameters greedily: every parameter starts with
// a quoted string, so any other token (or the end of the buffer) ends
// the list.
func (p *Parser) readParamList() (ParamList, error) {
	var list ParamList
	for {
		tok, ok := p.tokenizer.Peek()
		if !ok || !tok.IsQuote() {
			break
		}

		param, err := p.readParam()
		if err != nil {
			return ParamList{}, err
		}
		if err := list.Add(param); err != nil {
			return ParamList{}, err
		}
	}
	return list, nil
}
