package canvas

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

var (
	// ErrUnknownProperty is returned for a property name the item does not have.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrPropertyType is returned when a value has the wrong type.
	ErrPropertyType = errors.New("wrong property value type")
)

// Property names understood by the bridge.
const (
	PropX                   = "x"
	PropY                   = "y"
	PropWidth               = "width"
	PropHeight              = "height"
	PropVisibility          = "visibility"
	PropVisibilityThreshold = "visibility-threshold"
	PropPointerEvents       = "pointer-events"
	PropTransform           = "transform"
	PropClipPath            = "clip-path"
	PropClipFillRule        = "clip-fill-rule"
	PropFillColor           = "fill-color"
	PropStrokeColor         = "stroke-color"
	PropLineWidth           = "line-width"
	PropFillRule            = "fill-rule"
)

// PropertySpec describes one named property.
type PropertySpec struct {
	Name    string
	Default any
	Blurb   string
}

// GroupProperties lists the properties a Group adds to the common ones.
var GroupProperties = []PropertySpec{
	{PropX, 0.0, "The x coordinate of the group"},
	{PropY, 0.0, "The y coordinate of the group"},
	{PropWidth, -1.0, "The width of the group, or -1 to use the default width"},
	{PropHeight, -1.0, "The height of the group, or -1 to use the default height"},
}

// Properties is implemented by items exposing named attributes.
type Properties interface {
	Property(name string) (any, error)
	SetProperty(name string, value any) error
}

var (
	_ Properties = (*Group)(nil)
	_ Properties = (*Shape)(nil)
)

// --- Group ---

// Property returns the named attribute.
func (g *Group) Property(name string) (any, error) {
	switch name {
	case PropX:
		return g.x, nil
	case PropY:
		return g.y, nil
	case PropWidth:
		return g.width, nil
	case PropHeight:
		return g.height, nil
	}
	return g.Simple.property(name)
}

// SetProperty sets the named attribute. x, y, width and height accept any
// numeric value and move every descendant's frame, so they mark the whole
// subtree for revalidation.
func (g *Group) SetProperty(name string, value any) error {
	var field *float64
	switch name {
	case PropX:
		field = &g.x
	case PropY:
		field = &g.y
	case PropWidth:
		field = &g.width
	case PropHeight:
		field = &g.height
	default:
		return g.Simple.setProperty(name, value)
	}
	v, err := toFloat(name, value)
	if err != nil {
		return err
	}
	*field = v
	g.Changed(true)
	return nil
}

// --- Shape ---

// Property returns the named attribute.
func (sh *Shape) Property(name string) (any, error) {
	switch name {
	case PropFillColor:
		return sh.fillColor, nil
	case PropStrokeColor:
		return sh.strokeColor, nil
	case PropLineWidth:
		return sh.lineWidth, nil
	case PropFillRule:
		return sh.fillRule, nil
	}
	return sh.Simple.property(name)
}

// SetProperty sets the named attribute.
func (sh *Shape) SetProperty(name string, value any) error {
	switch name {
	case PropFillColor, PropStrokeColor:
		var col color.Color
		if value != nil {
			c, ok := value.(color.Color)
			if !ok {
				return propertyTypeError(name, value)
			}
			col = c
		}
		if name == PropFillColor {
			sh.SetFillColor(col)
		} else {
			sh.SetStrokeColor(col)
		}
		return nil
	case PropLineWidth:
		v, err := toFloat(name, value)
		if err != nil {
			return err
		}
		sh.SetLineWidth(v)
		return nil
	case PropFillRule:
		rule, ok := value.(gg.FillRule)
		if !ok {
			return propertyTypeError(name, value)
		}
		sh.SetFillRule(rule)
		return nil
	}
	return sh.Simple.setProperty(name, value)
}

// --- Common ---

func (s *Simple) property(name string) (any, error) {
	switch name {
	case PropVisibility:
		return s.visibility, nil
	case PropVisibilityThreshold:
		return s.visibilityThreshold, nil
	case PropPointerEvents:
		return s.pointerEvents, nil
	case PropTransform:
		if s.transform == nil {
			return nil, nil
		}
		return *s.transform, nil
	case PropClipPath:
		return s.clipPath, nil
	case PropClipFillRule:
		return s.clipFillRule, nil
	}
	return nil, fmt.Errorf("get %q: %w", name, ErrUnknownProperty)
}

func (s *Simple) setProperty(name string, value any) error {
	switch name {
	case PropVisibility:
		v, ok := value.(Visibility)
		if !ok {
			return propertyTypeError(name, value)
		}
		s.SetVisibility(v)
	case PropVisibilityThreshold:
		v, err := toFloat(name, value)
		if err != nil {
			return err
		}
		s.SetVisibilityThreshold(v)
	case PropPointerEvents:
		v, ok := value.(PointerEvents)
		if !ok {
			return propertyTypeError(name, value)
		}
		s.SetPointerEvents(v)
	case PropTransform:
		switch m := value.(type) {
		case nil:
			s.ClearTransform()
		case gg.Matrix:
			s.SetTransform(m)
		case *gg.Matrix:
			if m == nil {
				s.ClearTransform()
			} else {
				s.SetTransform(*m)
			}
		default:
			return propertyTypeError(name, value)
		}
	case PropClipPath:
		var p *gg.Path
		if value != nil {
			var ok bool
			if p, ok = value.(*gg.Path); !ok {
				return propertyTypeError(name, value)
			}
		}
		s.SetClipPath(p, s.clipFillRule)
	case PropClipFillRule:
		rule, ok := value.(gg.FillRule)
		if !ok {
			return propertyTypeError(name, value)
		}
		s.SetClipPath(s.clipPath, rule)
	default:
		return fmt.Errorf("set %q: %w", name, ErrUnknownProperty)
	}
	return nil
}

// toFloat accepts the numeric kinds a caller is likely to pass.
func toFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, propertyTypeError(name, value)
}

func propertyTypeError(name string, value any) error {
	return fmt.Errorf("set %q to %T: %w", name, value, ErrPropertyType)
}
