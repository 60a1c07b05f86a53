// Package renderer draws the maze scene and skybox with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/mazewalk/internal/engine/lighting"
	"github.com/Faultbox/mazewalk/internal/engine/model"
	"github.com/Faultbox/mazewalk/internal/engine/shader"
	"github.com/Faultbox/mazewalk/internal/game/entity"
	"github.com/Faultbox/mazewalk/internal/logger"
	"github.com/Faultbox/mazewalk/pkg/math"
)

// Scene vertex attribute locations, matching scene.vert.glsl.
const (
	attribPosition = 0
	attribTexcoord = 1
	attribNormal   = 2
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// vertexBuffer is a VAO/VBO pair holding one store's combined data.
type vertexBuffer struct {
	vao      uint32
	vbo      uint32
	vertices int32
}

func (b *vertexBuffer) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	*b = vertexBuffer{}
}

// Renderer handles all OpenGL rendering. It implements world.Drawer.
type Renderer struct {
	config Config

	scene  *shader.Program
	skybox *shader.Program

	sceneBuf  vertexBuffer
	skyboxBuf vertexBuffer

	textures [2]uint32 // Indexed by entity texture slot: ground, wall
	cubemap  uint32
	sun      lighting.Sun
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, sun: lighting.DefaultSun()}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.2, 0.4, 0.8, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	if r.scene, err = shader.Load("scene"); err != nil {
		return nil, fmt.Errorf("failed to create scene shader: %w", err)
	}
	if r.skybox, err = shader.Load("skybox"); err != nil {
		r.scene.Delete()
		return nil, fmt.Errorf("failed to create skybox shader: %w", err)
	}

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.sceneBuf.delete()
	r.skyboxBuf.delete()
	if r.scene != nil {
		r.scene.Delete()
	}
	if r.skybox != nil {
		r.skybox.Delete()
	}
}

// UploadScene uploads the store's combined buffer as the scene geometry.
func (r *Renderer) UploadScene(store *model.Store) error {
	if store.Stride() != model.DefaultStride {
		return fmt.Errorf("scene store stride %d, want %d", store.Stride(), model.DefaultStride)
	}
	r.sceneBuf.delete()
	r.sceneBuf = upload(store)

	stride := int32(model.DefaultStride * 4)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribTexcoord, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(attribTexcoord)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(5*4)))
	gl.EnableVertexAttribArray(attribNormal)
	gl.BindVertexArray(0)

	logger.Debug("scene uploaded",
		zap.Int("models", store.Len()),
		zap.Int32("vertices", r.sceneBuf.vertices))
	return nil
}

// UploadSkybox uploads a position-only store as the skybox geometry.
func (r *Renderer) UploadSkybox(store *model.Store) error {
	if store.Stride() != model.SkyboxStride {
		return fmt.Errorf("skybox store stride %d, want %d", store.Stride(), model.SkyboxStride)
	}
	r.skyboxBuf.delete()
	r.skyboxBuf = upload(store)

	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, int32(model.SkyboxStride*4), nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.BindVertexArray(0)
	return nil
}

// upload creates a VAO/VBO for the store and leaves the VAO bound.
func upload(store *model.Store) vertexBuffer {
	data := store.Combined()
	b := vertexBuffer{vertices: int32(store.TotalVertices())}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	return b
}

// SetTextures sets the ground and wall textures bound to units 0 and 1.
func (r *Renderer) SetTextures(ground, wall uint32) {
	r.textures[entity.TextureGround] = ground
	r.textures[entity.TextureWall] = wall
}

// SetSun sets the directional light.
func (r *Renderer) SetSun(sun lighting.Sun) {
	r.sun = sun
}

// SetCubemap sets the skybox cubemap texture.
func (r *Renderer) SetCubemap(tex uint32) {
	r.cubemap = tex
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the frame and prepares the scene program with the camera matrices.
func (r *Renderer) Begin(view, proj math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.scene.Use()
	r.scene.SetMat4("view", view)
	r.scene.SetMat4("proj", proj)
	r.scene.SetVec3("lightDir", view.TransformDirection(r.sun.Direction))
	r.scene.SetFloat("ambient", r.sun.Ambient)
	for unit, tex := range r.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	r.scene.SetInt("tex0", 0)
	r.scene.SetInt("tex1", 1)
	gl.BindVertexArray(r.sceneBuf.vao)
}

// DrawEntity draws one entity with its mesh range from the scene buffer.
func (r *Renderer) DrawEntity(e *entity.Entity, m model.Model) {
	r.scene.SetMat4("model", e.ModelMatrix())
	r.scene.SetInt("texID", int32(e.Texture()))
	r.scene.SetVec3("inColor", e.Color())
	gl.DrawArrays(gl.TRIANGLES, int32(m.Start), int32(m.Count))
}

// DrawSkybox draws the cubemap last, behind everything already drawn.
// view should have its translation removed.
func (r *Renderer) DrawSkybox(view, proj math.Mat4) {
	if r.cubemap == 0 || r.skyboxBuf.vertices == 0 {
		return
	}

	gl.DepthFunc(gl.LEQUAL)
	r.skybox.Use()
	r.skybox.SetMat4("view", view)
	r.skybox.SetMat4("proj", proj)
	r.skybox.SetInt("skybox", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.cubemap)
	gl.BindVertexArray(r.skyboxBuf.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.skyboxBuf.vertices)
	gl.BindVertexArray(0)
	gl.DepthFunc(gl.LESS)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
