// Package shader compiles GLSL programs, caches their uniform locations and
// reloads them when their source files change.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// stage is one source file of a program.
type stage struct {
	kind uint32
	file string
	src  string
}

// linkStages compiles every stage and links them into a new program. The
// shader objects are released whether or not linking succeeds.
func linkStages(stages ...stage) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range stages {
		id, err := compile(s)
		if err != nil {
			gl.DeleteProgram(program)
			return 0, err
		}
		gl.AttachShader(program, id)
		defer gl.DeleteShader(id)
	}
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		log := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", log)
	}
	return program, nil
}

func compile(s stage) (uint32, error) {
	id := gl.CreateShader(s.kind)
	src, free := gl.Strs(s.src + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		log := infoLog(id, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(id)
		return 0, fmt.Errorf("%s: %s", s.file, log)
	}
	return id, nil
}

// infoLog reads a shader or program info log with the matching getters.
func infoLog(id uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	param(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, n)
	read(id, n, nil, &buf[0])
	return strings.TrimSpace(strings.TrimRight(string(buf), "\x00"))
}

// uniformLocation returns -1 for unknown or inactive uniforms.
func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
