package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// gridShaderWGSL holds the combined vertex and fragment shader for the
// ASCII grid pipeline.
//
//go:embed shader.wgsl
var gridShaderWGSL string

// compileShaderToSPIRV compiles WGSL source to a SPIR-V word slice.
// SPIR-V is little-endian 32-bit words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}
