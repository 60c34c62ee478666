// Package mesher turns a CSG tree into a boundary mesh.
//
// A Session walks a fixed sequence of states:
//
//	Configured -> Evaluated -> Meshed -> Optimized -> Extracted
//
// Options may only be changed while Configured. Calling a step out of order
// fails with ErrWrongState. Close releases the session from any state.
package mesher

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/marcuswu/linkage-assembly/internal/csg"
	"github.com/marcuswu/linkage-assembly/internal/mesh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

var (
	ErrWrongState = errors.New("wrong session state")
	ErrClosed     = errors.New("session closed")
	ErrEmptyMesh  = errors.New("tree evaluates to an empty solid")
)

// State is a step of the pipeline.
type State int

const (
	Configured State = iota
	Evaluated
	Meshed
	Optimized
	Extracted
	Closed
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case Evaluated:
		return "evaluated"
	case Meshed:
		return "meshed"
	case Optimized:
		return "optimized"
	case Extracted:
		return "extracted"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session converts one named tree into one mesh. It is not reusable.
type Session struct {
	id    uuid.UUID
	name  string
	tree  csg.Node
	opts  Options
	state State

	field sdf.SDF3
	grid  *grid
	raw   mesh.Mesh
	final mesh.Mesh

	log zerolog.Logger
}

// New opens a session for tree. name labels the mesh and the log lines.
func New(tree csg.Node, name string) *Session {
	id := uuid.New()
	return &Session{
		id:   id,
		name: name,
		tree: tree,
		opts: DefaultOptions(),
		log:  log.With().Str("component", name).Str("session", id.String()).Logger(),
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Name() string { return s.name }

func (s *Session) State() State { return s.state }

func (s *Session) Options() Options { return s.opts }

func (s *Session) require(want State) error {
	if s.state == Closed {
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	if s.state != want {
		return fmt.Errorf("%s: %w: in %s, need %s", s.name, ErrWrongState, s.state, want)
	}
	return nil
}

// SetOptions replaces the mesh options. Only allowed before ComputeTree.
func (s *Session) SetOptions(o Options) error {
	if err := s.require(Configured); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	s.opts = o
	return nil
}

// ComputeTree validates the tree and evaluates it into a distance field.
func (s *Session) ComputeTree() error {
	if err := s.require(Configured); err != nil {
		return err
	}
	field, err := csg.SDF(s.tree)
	if err != nil {
		return fmt.Errorf("%s: compute tree: %w", s.name, err)
	}
	s.field = field
	s.state = Evaluated
	s.log.Debug().Int("leaves", len(csg.Leaves(s.tree))).Msg("tree evaluated")
	return nil
}

// GenerateMesh samples the field and extracts its boundary.
func (s *Session) GenerateMesh() error {
	if err := s.require(Evaluated); err != nil {
		return err
	}
	g := newGrid(csg.Bounds(s.tree), cellSize(s.tree, s.opts))
	g.sample(s.field)
	raw := polygonize(g, s.name)
	if raw.IsEmpty() {
		return fmt.Errorf("%s: generate mesh: %w", s.name, ErrEmptyMesh)
	}
	s.grid, s.raw = g, raw
	s.state = Meshed
	s.log.Debug().
		Float64("cell", g.step).
		Ints("cells", []int{g.nx, g.ny, g.nz}).
		Int("vertices", raw.VertexCount()).
		Int("faces", raw.FaceCount()).
		Msg("mesh generated")
	return nil
}

// OptimizeMesh moves vertices onto the surface. Connectivity is unchanged.
func (s *Session) OptimizeMesh() error {
	if err := s.require(Meshed); err != nil {
		return err
	}
	s.final = project(s.raw, s.field, s.grid.step)
	s.raw = mesh.Mesh{}
	s.state = Optimized
	s.log.Debug().Msg("mesh optimized")
	return nil
}

// Extract returns the boundary mesh.
func (s *Session) Extract() (mesh.Mesh, error) {
	if err := s.require(Optimized); err != nil {
		return mesh.Mesh{}, err
	}
	s.state = Extracted
	return s.final, nil
}

// ExportSTL writes the library's own octree rendering of the evaluated field.
// cells is the number of cells along the longest axis.
func (s *Session) ExportSTL(path string, cells int) error {
	if s.state == Closed {
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	if s.state < Evaluated {
		return fmt.Errorf("%s: %w: in %s, need %s", s.name, ErrWrongState, s.state, Evaluated)
	}
	if err := render.CreateSTL(path, render.NewOctreeRenderer(s.field, cells)); err != nil {
		return fmt.Errorf("%s: export stl: %w", s.name, err)
	}
	s.log.Info().Str("path", path).Msg("stl exported")
	return nil
}

// Close releases the field and the sampled grid. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.state == Closed {
		return nil
	}
	s.field, s.grid, s.tree = nil, nil, nil
	s.raw, s.final = mesh.Mesh{}, mesh.Mesh{}
	s.state = Closed
	s.log.Debug().Msg("session closed")
	return nil
}

// Build runs the full pipeline for tree and always closes the session.
func Build(ctx context.Context, tree csg.Node, name string, opts Options) (mesh.Mesh, error) {
	s := New(tree, name)
	defer s.Close()

	if err := s.SetOptions(opts); err != nil {
		return mesh.Mesh{}, err
	}
	steps := []func() error{s.ComputeTree, s.GenerateMesh, s.OptimizeMesh}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return mesh.Mesh{}, err
		}
		if err := step(); err != nil {
			return mesh.Mesh{}, err
		}
	}
	m, err := s.Extract()
	if err != nil {
		return mesh.Mesh{}, err
	}
	s.log.Info().Int("vertices", m.VertexCount()).Int("faces", m.FaceCount()).Msg("component meshed")
	return m, nil
}
