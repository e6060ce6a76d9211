// Package shaders provides the embedded default GLSL sources.
package shaders

import _ "embed"

// SceneVertexShader transforms the reflective mesh.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader samples the environment cubemap along the reflected view ray.
//
//go:embed scene.frag
var SceneFragmentShader string

// SkyboxVertexShader projects the unit cube onto the far plane.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader samples the skybox cubemap by direction.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
