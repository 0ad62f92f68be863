package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/johnxnguyen/newton/body"
	"github.com/johnxnguyen/newton/vec2"
)

// Errors surfaced by Load, matching the error-kind table a production
// configuration loader needs: a caller can distinguish "the document is
// malformed" from "the document is well-formed but says something
// impossible."
var (
	ErrMissingKey       = errors.New("config: missing key")
	ErrTypeMismatch     = errors.New("config: type mismatch")
	ErrUnknownReference = errors.New("config: unknown generator or body reference")
	ErrInvalidValue     = errors.New("config: invalid value")
)

// Load reads the YAML document at path and flattens it into the ordered
// list of bodies it describes. Random generators referenced by the
// document draw from src, so that a given (document, src) pair always
// produces the same bodies.
func Load(path string, src rand.Source) ([]*body.Body, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	doc, err := resolve(raw, src)
	if err != nil {
		return nil, err
	}
	return doc.flatten()
}

// rawDocument is the literal shape of the YAML document: named generators,
// named body templates, and a systems tree.
type rawDocument struct {
	Gens    []rawGen      `yaml:"gens"`
	Bodies  []rawBody     `yaml:"bodies"`
	Systems rawSystemNode `yaml:"systems"`
}

type rawGen struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	X    rawSpan `yaml:"x"`
	Y    rawSpan `yaml:"y"`
	Dx   rawSpan `yaml:"dx"`
	Dy   rawSpan `yaml:"dy"`
}

type rawSpan struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type rawBody struct {
	Name string    `yaml:"name"`
	Num  int       `yaml:"num"`
	Mass yaml.Node `yaml:"m"`
	T    yaml.Node `yaml:"t"`
	V    yaml.Node `yaml:"v"`
	R    yaml.Node `yaml:"r"`
}

type rawSystemNode struct {
	Body    string          `yaml:"body"`
	T       rawXY           `yaml:"t"`
	V       rawDxDy         `yaml:"v"`
	R       float64         `yaml:"r"`
	Systems []rawSystemNode `yaml:"systems"`
}

type rawXY struct {
	X, Y float64
}

type rawDxDy struct {
	Dx, Dy float64
}

// document is the resolved, ready-to-flatten form of a rawDocument: every
// generator reference has been looked up and every template compiled into a
// set of value sources.
type document struct {
	bodies map[string]bodyTemplate
	root   systemNode
}

// bodyTemplate produces the mass and own transform of one replica of a
// named body.
type bodyTemplate struct {
	num  int
	mass func() float64
	t    func() vec2.Vector
	v    func() vec2.Vector
	r    func() float64
}

func (t bodyTemplate) draw() (mass float64, own transform) {
	return t.mass(), transform{rotation: t.r(), translation: t.t(), velocity: t.v()}
}

// systemNode is the resolved systems tree: either a leaf naming a body
// template, or an internal node with its own transform and children.
type systemNode struct {
	isLeaf   bool
	bodyName string
	own      transform
	children []systemNode
}

// transform is an accumulated rotation, translation, and velocity offset.
type transform struct {
	rotation    float64
	translation vec2.Vector
	velocity    vec2.Vector
}

// compose applies own on top of acc: own's rotation is added to acc's, and
// own's translation/velocity are rotated by the resulting accumulated
// rotation before being added to acc's, per the systems tree's
// root-to-leaf composition rule.
func compose(acc, own transform) transform {
	rotation := acc.rotation + own.rotation
	r := vec2.Rotation(rotation)
	return transform{
		rotation:    rotation,
		translation: acc.translation.Add(r.Apply(own.translation)),
		velocity:    acc.velocity.Add(r.Apply(own.velocity)),
	}
}

func (d document) flatten() ([]*body.Body, error) {
	var out []*body.Body
	if err := d.walk(d.root, transform{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d document) walk(node systemNode, acc transform, out *[]*body.Body) error {
	if node.isLeaf {
		tmpl, ok := d.bodies[node.bodyName]
		if !ok {
			return fmt.Errorf("%w: body %q", ErrUnknownReference, node.bodyName)
		}
		for i := 0; i < tmpl.num; i++ {
			mass, own := tmpl.draw()
			final := compose(acc, own)
			position := vec2.Point{}.Add(final.translation)
			*out = append(*out, body.New(mass, position, final.velocity))
		}
		return nil
	}

	next := compose(acc, node.own)
	for _, child := range node.children {
		if err := d.walk(child, next, out); err != nil {
			return err
		}
	}
	return nil
}

// resolve turns a rawDocument into a document: named generators are
// constructed and indexed, body templates are compiled into value sources,
// and the systems tree is converted into its resolved form.
func resolve(raw rawDocument, src rand.Source) (document, error) {
	massGens := map[string]MassGen{}
	transGens := map[string]TranslationGen{}
	velGens := map[string]VelocityGen{}
	rotGens := map[string]RotationGen{}

	for _, g := range raw.Gens {
		if g.Name == "" {
			return document{}, fmt.Errorf("%w: gen missing name", ErrMissingKey)
		}
		switch g.Type {
		case "mass":
			massGens[g.Name] = NewMassGen(g.Low, g.High, src)
		case "translation":
			transGens[g.Name] = NewTranslationGen(g.X.Min, g.X.Max, g.Y.Min, g.Y.Max, src)
		case "velocity":
			velGens[g.Name] = NewVelocityGen(g.Dx.Min, g.Dx.Max, g.Dy.Min, g.Dy.Max, src)
		case "rotation":
			rotGens[g.Name] = NewRotationGenDegrees(g.Low, g.High, src)
		case "":
			return document{}, fmt.Errorf("%w: gen %q missing type", ErrMissingKey, g.Name)
		default:
			return document{}, fmt.Errorf("%w: unknown generator type %q", ErrInvalidValue, g.Type)
		}
	}

	bodies := map[string]bodyTemplate{}
	for _, b := range raw.Bodies {
		if b.Name == "" {
			return document{}, fmt.Errorf("%w: body missing name", ErrMissingKey)
		}
		num := b.Num
		if num == 0 {
			num = 1
		}
		if num < 1 {
			return document{}, fmt.Errorf("%w: body %q has num < 1", ErrInvalidValue, b.Name)
		}

		massSource, err := resolveMass(b.Mass, massGens)
		if err != nil {
			return document{}, fmt.Errorf("body %q: %w", b.Name, err)
		}
		tSource, err := resolveTranslation(b.T, transGens)
		if err != nil {
			return document{}, fmt.Errorf("body %q: %w", b.Name, err)
		}
		vSource, err := resolveVelocity(b.V, velGens)
		if err != nil {
			return document{}, fmt.Errorf("body %q: %w", b.Name, err)
		}
		rSource, err := resolveRotation(b.R, rotGens)
		if err != nil {
			return document{}, fmt.Errorf("body %q: %w", b.Name, err)
		}

		bodies[b.Name] = bodyTemplate{num: num, mass: massSource, t: tSource, v: vSource, r: rSource}
	}

	root, err := resolveSystemNode(raw.Systems)
	if err != nil {
		return document{}, err
	}

	return document{bodies: bodies, root: root}, nil
}

func resolveSystemNode(raw rawSystemNode) (systemNode, error) {
	own := transform{
		rotation:    degreesToRadians(raw.R),
		translation: vec2.Vector{Dx: raw.T.X, Dy: raw.T.Y},
		velocity:    vec2.Vector{Dx: raw.V.Dx, Dy: raw.V.Dy},
	}
	if raw.Body != "" {
		if len(raw.Systems) != 0 {
			return systemNode{}, fmt.Errorf("%w: a systems node cannot be both a body leaf and have children", ErrInvalidValue)
		}
		return systemNode{isLeaf: true, bodyName: raw.Body, own: own}, nil
	}

	children := make([]systemNode, 0, len(raw.Systems))
	for _, c := range raw.Systems {
		child, err := resolveSystemNode(c)
		if err != nil {
			return systemNode{}, err
		}
		children = append(children, child)
	}
	return systemNode{own: own, children: children}, nil
}

// resolveMass returns a value source for a body's mass field, which is
// either a named generator reference or a literal value.
func resolveMass(node yaml.Node, gens map[string]MassGen) (func() float64, error) {
	if isEmptyNode(node) {
		return nil, fmt.Errorf("%w: m", ErrMissingKey)
	}
	if ref, ok := asReference(node); ok {
		g, ok := gens[ref]
		if !ok {
			return nil, fmt.Errorf("%w: mass generator %q", ErrUnknownReference, ref)
		}
		return g.Next, nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: m: %v", ErrTypeMismatch, err)
	}
	if v <= 0 {
		return nil, fmt.Errorf("%w: m must be strictly positive", ErrInvalidValue)
	}
	return func() float64 { return v }, nil
}

func resolveTranslation(node yaml.Node, gens map[string]TranslationGen) (func() vec2.Vector, error) {
	if isEmptyNode(node) {
		zero := vec2.Vector{}
		return func() vec2.Vector { return zero }, nil
	}
	if ref, ok := asReference(node); ok {
		g, ok := gens[ref]
		if !ok {
			return nil, fmt.Errorf("%w: translation generator %q", ErrUnknownReference, ref)
		}
		return g.Next, nil
	}
	var xy rawXY
	if err := node.Decode(&xy); err != nil {
		return nil, fmt.Errorf("%w: t: %v", ErrTypeMismatch, err)
	}
	v := vec2.Vector{Dx: xy.X, Dy: xy.Y}
	return func() vec2.Vector { return v }, nil
}

func resolveVelocity(node yaml.Node, gens map[string]VelocityGen) (func() vec2.Vector, error) {
	if isEmptyNode(node) {
		zero := vec2.Vector{}
		return func() vec2.Vector { return zero }, nil
	}
	if ref, ok := asReference(node); ok {
		g, ok := gens[ref]
		if !ok {
			return nil, fmt.Errorf("%w: velocity generator %q", ErrUnknownReference, ref)
		}
		return g.Next, nil
	}
	var dxdy rawDxDy
	if err := node.Decode(&dxdy); err != nil {
		return nil, fmt.Errorf("%w: v: %v", ErrTypeMismatch, err)
	}
	v := vec2.Vector{Dx: dxdy.Dx, Dy: dxdy.Dy}
	return func() vec2.Vector { return v }, nil
}

func resolveRotation(node yaml.Node, gens map[string]RotationGen) (func() float64, error) {
	if isEmptyNode(node) {
		return func() float64 { return 0 }, nil
	}
	if ref, ok := asReference(node); ok {
		g, ok := gens[ref]
		if !ok {
			return nil, fmt.Errorf("%w: rotation generator %q", ErrUnknownReference, ref)
		}
		return g.Next, nil
	}
	var degrees float64
	if err := node.Decode(&degrees); err != nil {
		return nil, fmt.Errorf("%w: r: %v", ErrTypeMismatch, err)
	}
	radians := degreesToRadians(degrees)
	return func() float64 { return radians }, nil
}

func isEmptyNode(node yaml.Node) bool {
	return node.Kind == 0
}

// asReference reports whether node is a bare scalar string, the YAML shape
// used to name a generator instead of supplying a literal value.
func asReference(node yaml.Node) (string, bool) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!str" {
		return "", false
	}
	return node.Value, true
}
