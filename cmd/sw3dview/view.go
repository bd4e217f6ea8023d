package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/sw3d/pkg/camera"
	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/models"
	"github.com/taigrr/sw3d/pkg/raster"
	"github.com/taigrr/sw3d/pkg/scene"
)

// orbitAxis tracks an angle and a velocity that decays toward zero through a
// critically damped spring, so key/mouse impulses settle out smoothly
// instead of snapping to rest.
type orbitAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *orbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

type orbitState struct {
	Yaw, Pitch orbitAxis
}

func newOrbitState(fps int) *orbitState {
	return &orbitState{Yaw: newOrbitAxis(fps), Pitch: newOrbitAxis(fps)}
}

func (o *orbitState) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
}

func (o *orbitState) Impulse(yaw, pitch float64) {
	o.Yaw.Velocity += yaw
	o.Pitch.Velocity += pitch
	const maxPitch = math.Pi/2 - 0.05
	if o.Pitch.Position > maxPitch {
		o.Pitch.Position = maxPitch
	}
	if o.Pitch.Position < -maxPitch {
		o.Pitch.Position = -maxPitch
	}
}

func newViewCmd() *cobra.Command {
	var (
		texturePath   string
		fps           int
		bgR, bgG, bgB uint8
		wireframe     bool
		showAxes      bool
	)

	cmd := &cobra.Command{
		Use:   "view <mesh.glb>",
		Short: "View a glTF mesh interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(args[0], texturePath, fps, raster.RGB(bgR, bgG, bgB), wireframe, showAxes)
		},
	}

	cmd.Flags().StringVar(&texturePath, "texture", "", "path to a PNG/JPEG texture (overrides any embedded glTF texture)")
	cmd.Flags().IntVar(&fps, "fps", 60, "target frame rate")
	cmd.Flags().Uint8Var(&bgR, "bg-r", 20, "background red channel")
	cmd.Flags().Uint8Var(&bgG, "bg-g", 20, "background green channel")
	cmd.Flags().Uint8Var(&bgB, "bg-b", 30, "background blue channel")
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "draw the mesh as a wireframe instead of shaded")
	cmd.Flags().BoolVar(&showAxes, "axes", false, "overlay origin axes and a ground grid")

	return cmd
}

func runView(meshPath, texturePath string, fps int, bg raster.Color, wireframe, showAxes bool) error {
	mesh, texImg, err := models.LoadGLBWithTexture(meshPath)
	if err != nil {
		return fmt.Errorf("load mesh: %w", err)
	}

	var tex *raster.Texture
	if texturePath != "" {
		tex, err = raster.LoadTexture(texturePath)
		if err != nil {
			return fmt.Errorf("load texture: %w", err)
		}
	} else if texImg != nil {
		tex = raster.TextureFromImage(texImg)
	} else {
		tex = raster.NewCheckerTexture(64, 64, 8, raster.RGB(200, 200, 200), raster.RGB(100, 100, 100))
	}

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 2.0 / maxDim
		mesh.Transform(math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Negate())))
	}

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	termRenderer := newTerminalRenderer(term, cols, rows)
	fbWidth, fbHeight := termRenderer.framebufferSize()

	r := raster.NewRenderer(fbWidth, fbHeight)
	r.SetClearColor(bg)
	r.SetFaceMode(raster.FaceFront)
	r.SetDepthMode(raster.DepthLess)

	cam := camera.NewCamera()
	cam.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	cam.SetClipPlanes(0.1, 100)

	wire := scene.NewWireframe(cam, r)

	orbit := newOrbitState(fps)
	const distance = 4.0
	lightDir := math3d.V3(0.5, 1, 0.3).Normalize()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var torque struct{ yaw, pitch float64 }
	const torqueStrength = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				termRenderer = newTerminalRenderer(term, cols, rows)
				fbWidth, fbHeight = termRenderer.framebufferSize()
				r.Resize(fbWidth, fbHeight)
				cam.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("a", "left"):
					torque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					torque.yaw = torqueStrength
				case ev.MatchString("w", "up"):
					torque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					torque.pitch = torqueStrength
				case ev.MatchString("space"):
					orbit.Impulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				case ev.MatchString("x"):
					wireframe = !wireframe
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					torque.yaw = 0
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					torque.pitch = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.Impulse(float64(dx)*0.03, float64(dy)*0.03)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
			}
		}
	}()

	mat := raster.TexturedMaterial{Texture: tex, LightDir: lightDir}

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		orbit.Impulse(torque.yaw*dt, torque.pitch*dt)
		torque.yaw *= 0.9
		torque.pitch *= 0.9
		orbit.Update()

		eye := math3d.V3(
			math.Sin(orbit.Yaw.Position)*math.Cos(orbit.Pitch.Position)*distance,
			math.Sin(orbit.Pitch.Position)*distance,
			math.Cos(orbit.Yaw.Position)*math.Cos(orbit.Pitch.Position)*distance,
		)
		cam.SetPosition(eye)
		cam.LookAt(math3d.Zero3())

		r.SetView(cam.ViewMatrix())
		r.SetProjection(cam.ProjectionMatrix())
		r.Clear()

		if wireframe {
			wireColor := raster.RGB(0, 255, 128)
			for _, f := range mesh.Faces {
				p0 := mesh.Vertices[f.V[0]].Position
				p1 := mesh.Vertices[f.V[1]].Position
				p2 := mesh.Vertices[f.V[2]].Position
				wire.DrawLine3D(p0, p1, wireColor)
				wire.DrawLine3D(p1, p2, wireColor)
				wire.DrawLine3D(p2, p0, wireColor)
			}
		} else {
			r.DrawShadedMesh(mesh, mat, math3d.Identity())
		}
		if showAxes {
			wire.DrawAxes(1.5)
			wire.DrawGrid(6, 0.5, raster.RGB(80, 80, 80))
		}

		termRenderer.render(r.Framebuffer())
		if err := termRenderer.flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
