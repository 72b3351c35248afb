package system

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/constant"
	"github.com/lixenwraith/grove/engine"
	"github.com/lixenwraith/grove/render"
)

// RenderSystem rasterizes every active RendererComponent into the matrix and presents it.
// Board y grows upwards, so cell y maps to row size-1-y.
type RenderSystem struct {
	engine.SystemBase
	matrix *render.Matrix
	sink   render.Sink
	status func() string

	frames int
	err    error
}

func NewRenderSystem(em *engine.EntityManager, matrix *render.Matrix, sink render.Sink, status func() string) *RenderSystem {
	return &RenderSystem{
		SystemBase: engine.NewSystemBase(em),
		matrix:     matrix,
		sink:       sink,
		status:     status,
	}
}

func (*RenderSystem) Group() engine.SystemGroup {
	return engine.GroupRender
}

func (s *RenderSystem) OnUpdate() {
	s.matrix.Reset()
	size := s.matrix.Size()

	for _, r := range engine.Search[component.RendererComponent](s.Entities, false) {
		transform, ok := engine.Get[component.TransformComponent](s.Entities, r.Entity)
		if !ok {
			continue
		}
		cell := transform.Position.Cell()
		s.matrix.Set(cell.X, size-1-cell.Y, r.Component.Symbol, r.Component.Style())
	}

	var status string
	if s.status != nil {
		status = s.status()
	}
	if err := s.sink.Draw(s.matrix, status); err != nil {
		if s.err == nil {
			log.Printf("render: draw failed: %v", err)
		}
		s.err = err
		return
	}
	s.frames++
}

// Frames returns the number of frames presented
func (s *RenderSystem) Frames() int {
	return s.frames
}

// Err returns the last draw error, nil if every draw succeeded
func (s *RenderSystem) Err() error {
	return s.err
}

// EmptyCell is the blank board cell
func EmptyCell(color tcell.Color) render.Cell {
	return render.Cell{Rune: constant.EmptyGlyph, Style: tcell.StyleDefault.Foreground(color)}
}
