package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownControl is returned for a control string that names no key or mouse button.
	ErrUnknownControl = errors.New("unknown control")
	// ErrUnknownBindingType is returned for a binding whose type is not button, composite or pointer.
	ErrUnknownBindingType = errors.New("unknown binding type")
)

// BindingType selects how raw events are turned into an action's payload.
type BindingType string

const (
	// BindingButton emits a button payload on every press and release of any listed control.
	BindingButton BindingType = "button"
	// BindingComposite combines up to four keys into a 2D direction, emitted on every change.
	BindingComposite BindingType = "composite"
	// BindingPointer emits the scaled cursor delta on every cursor move.
	BindingPointer BindingType = "pointer"
)

// Binding describes the controls feeding one action. Controls are written as "key:<name>" or
// "mouse:<left|right|middle>".
type Binding struct {
	Type     BindingType `yaml:"type"`
	Controls []string    `yaml:"controls,omitempty"`
	Up       string      `yaml:"up,omitempty"`
	Down     string      `yaml:"down,omitempty"`
	Left     string      `yaml:"left,omitempty"`
	Right    string      `yaml:"right,omitempty"`
	Scale    Scale       `yaml:"scale,omitempty"`
}

// Bindings maps action names to their bindings.
type Bindings map[string]Binding

// Scale is a per-axis multiplier. In YAML it may be a single number or a two-element list.
type Scale [2]float32

// UnmarshalYAML accepts `scale: 0.2` as well as `scale: [0.2, -0.2]`.
func (s *Scale) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var f float32
		if err := value.Decode(&f); err != nil {
			return err
		}
		*s = Scale{f, f}
		return nil
	case yaml.SequenceNode:
		var fs []float32
		if err := value.Decode(&fs); err != nil {
			return err
		}
		if len(fs) != 2 {
			return fmt.Errorf("scale must have 2 elements, got %d", len(fs))
		}
		*s = Scale{fs[0], fs[1]}
		return nil
	default:
		return fmt.Errorf("scale must be a number or a list of 2 numbers")
	}
}

func (s Scale) vec() mgl32.Vec2 {
	if s == (Scale{}) {
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{s[0], s[1]}
}

type deviceKind int

const (
	deviceKey deviceKind = iota
	deviceMouse
)

// control identifies one physical key or mouse button.
type control struct {
	device deviceKind
	code   uint32
}

func parseControl(s string) (control, error) {
	device, name, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return control{}, fmt.Errorf("%w: %q (want key:<name> or mouse:<button>)", ErrUnknownControl, s)
	}
	switch strings.ToLower(device) {
	case "key":
		if code, ok := common.KeyByName(name); ok {
			return control{device: deviceKey, code: code}, nil
		}
	case "mouse":
		if code, ok := common.MouseButtonByName(name); ok {
			return control{device: deviceMouse, code: code}, nil
		}
	}
	return control{}, fmt.Errorf("%w: %q", ErrUnknownControl, s)
}

// compiledBinding is a Binding with its controls resolved.
type compiledBinding struct {
	action  string
	typ     BindingType
	buttons []control
	// up, down, left, right; nil when the direction is not bound
	dirs  [4]*control
	scale mgl32.Vec2
}

func (b Binding) compile(action string) (compiledBinding, error) {
	cb := compiledBinding{action: action, typ: b.Type, scale: b.Scale.vec()}

	switch b.Type {
	case BindingButton:
		if len(b.Controls) == 0 {
			return cb, fmt.Errorf("action %q: button binding needs at least one control", action)
		}
		for _, s := range b.Controls {
			c, err := parseControl(s)
			if err != nil {
				return cb, fmt.Errorf("action %q: %w", action, err)
			}
			cb.buttons = append(cb.buttons, c)
		}
	case BindingComposite:
		bound := 0
		for i, s := range [4]string{b.Up, b.Down, b.Left, b.Right} {
			if s == "" {
				continue
			}
			c, err := parseControl(s)
			if err != nil {
				return cb, fmt.Errorf("action %q: %w", action, err)
			}
			cb.dirs[i] = &c
			bound++
		}
		if bound == 0 {
			return cb, fmt.Errorf("action %q: composite binding needs at least one direction", action)
		}
	case BindingPointer:
	default:
		return cb, fmt.Errorf("action %q: %w: %q", action, ErrUnknownBindingType, b.Type)
	}
	return cb, nil
}

// compile resolves every binding, in action-name order so dispatch order is stable.
func (bs Bindings) compile() ([]compiledBinding, error) {
	names := make([]string, 0, len(bs))
	for name := range bs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]compiledBinding, 0, len(bs))
	for _, name := range names {
		cb, err := bs[name].compile(name)
		if err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, nil
}

// Validate checks every binding's type and controls.
//
// Returns:
//   - error: the first invalid binding, or nil
func (bs Bindings) Validate() error {
	_, err := bs.compile()
	return err
}

// ParseBindings decodes a YAML mapping of action name to binding and validates it.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Bindings: the decoded bindings
//   - error: decoding or validation error
func ParseBindings(data []byte) (Bindings, error) {
	var bs Bindings
	if err := yaml.Unmarshal(data, &bs); err != nil {
		return nil, fmt.Errorf("failed to decode bindings: %w", err)
	}
	if err := bs.Validate(); err != nil {
		return nil, err
	}
	return bs, nil
}
