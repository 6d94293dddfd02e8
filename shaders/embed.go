// Package shaders provides the embedded GLSL sources used by the scene presets.
//
// Vertex stages live under vs/ and fragment stages under fs/. A shaders root
// configured on disk with the same layout overrides these file by file.
package shaders

import "embed"

// FS holds every embedded stage source.
//
//go:embed vs/*.vert fs/*.frag
var FS embed.FS

// SimpleVertex is the pass-through vertex stage, also useful as a fixture.
//
//go:embed vs/simple.vert
var SimpleVertex string

// SimpleFragment is the solid orange fragment stage.
//
//go:embed fs/simple.frag
var SimpleFragment string
