package shader

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/logger"
)

// Program is a linked GL program whose uniform locations are resolved once at
// link time and looked up by a small integer enum U.
type Program[U ~int] struct {
	ID uint32

	fsys  fs.FS
	vert  string
	frag  string
	names []string
	locs  []int32
}

// Link reads vert and frag from fsys, links them and resolves the uniforms
// in names. names[i] is the GLSL name of enum value U(i).
func Link[U ~int](fsys fs.FS, vert, frag string, names []string) (*Program[U], error) {
	p := &Program[U]{fsys: fsys, vert: vert, frag: frag, names: names}
	id, err := p.build()
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.locs = resolve(names, func(name string) int32 { return uniformLocation(id, name) })
	p.logInactive()
	return p, nil
}

func (p *Program[U]) build() (uint32, error) {
	vs, err := fs.ReadFile(p.fsys, p.vert)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", p.vert, err)
	}
	fsrc, err := fs.ReadFile(p.fsys, p.frag)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", p.frag, err)
	}
	id, err := linkStages(
		stage{kind: gl.VERTEX_SHADER, file: p.vert, src: string(vs)},
		stage{kind: gl.FRAGMENT_SHADER, file: p.frag, src: string(fsrc)},
	)
	if err != nil {
		return 0, fmt.Errorf("program %s+%s: %w", p.vert, p.frag, err)
	}
	return id, nil
}

// resolve maps each uniform name to its location.
func resolve(names []string, lookup func(string) int32) []int32 {
	locs := make([]int32, len(names))
	for i, name := range names {
		locs[i] = lookup(name)
	}
	return locs
}

func (p *Program[U]) logInactive() {
	for i, loc := range p.locs {
		if loc < 0 {
			logger.Debug("inactive uniform",
				zap.String("program", p.vert),
				zap.String("uniform", p.names[i]))
		}
	}
}

// Loc returns the cached location of u, or -1 when u is unknown or the
// uniform is inactive. GL ignores writes to location -1.
func (p *Program[U]) Loc(u U) int32 {
	i := int(u)
	if i < 0 || i >= len(p.locs) {
		return -1
	}
	return p.locs[i]
}

// Use makes the program current.
func (p *Program[U]) Use() {
	gl.UseProgram(p.ID)
}

// Uses reports whether file is one of the program's sources.
func (p *Program[U]) Uses(file string) bool {
	return file == p.vert || file == p.frag
}

// Reload rebuilds the program from its sources. On failure the current
// program stays in use and the error is returned.
func (p *Program[U]) Reload() error {
	id, err := p.build()
	if err != nil {
		return err
	}
	gl.DeleteProgram(p.ID)
	p.ID = id
	p.locs = resolve(p.names, func(name string) int32 { return uniformLocation(id, name) })
	p.logInactive()
	return nil
}

// Delete releases the GL program.
func (p *Program[U]) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Handle returns the current GL program id. It changes after a successful Reload.
func (p *Program[U]) Handle() uint32 {
	return p.ID
}
