package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/taigrr/sw3d/pkg/camera"
	"github.com/taigrr/sw3d/pkg/math3d"
	"github.com/taigrr/sw3d/pkg/models"
	"github.com/taigrr/sw3d/pkg/raster"
)

func newSnapshotCmd() *cobra.Command {
	var (
		meshPath   string
		outPath    string
		width      int
		height     int
		frames     int
		yawStep    float64
		distance   float64
		lightDir   []float64
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a glTF mesh to one or more PNG frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesh, err := models.LoadGLB(meshPath)
			if err != nil {
				return fmt.Errorf("load mesh: %w", err)
			}

			r := raster.NewRenderer(width, height)
			r.SetClearColor(raster.RGB(20, 20, 30))
			r.SetFaceMode(raster.FaceFront)
			r.SetDepthMode(raster.DepthLess)

			cam := camera.NewCamera()
			cam.SetAspectRatio(float64(width) / float64(height))
			center := mesh.Center()
			radius := mesh.Size().Len()
			if radius == 0 {
				radius = 1
			}

			mat := raster.LitMaterial{
				BaseColor: math3d.V3(200, 200, 220),
				LightDir:  math3d.V3(lightDir[0], lightDir[1], lightDir[2]),
			}

			for i := 0; i < frames; i++ {
				angle := float64(i) * yawStep
				eye := center.Add(math3d.V3(math.Sin(angle)*radius*distance, radius*distance*0.5, math.Cos(angle)*radius*distance))
				cam.SetPosition(eye)
				cam.LookAt(center)

				r.SetView(cam.ViewMatrix())
				r.SetProjection(cam.ProjectionMatrix())
				r.Clear()
				r.DrawShadedMesh(mesh, mat, math3d.Identity())

				path := fmt.Sprintf(outPath, i)
				if err := r.Framebuffer().SavePNG(path); err != nil {
					return fmt.Errorf("save frame %d: %w", i, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&meshPath, "mesh", "", "path to a .glb file (required)")
	cmd.Flags().StringVar(&outPath, "out", "frame-%03d.png", "output path format (use %d for the frame index)")
	cmd.Flags().IntVar(&width, "width", 320, "framebuffer width")
	cmd.Flags().IntVar(&height, "height", 240, "framebuffer height")
	cmd.Flags().IntVar(&frames, "frames", 1, "number of frames to render, orbiting the camera between them")
	cmd.Flags().Float64Var(&yawStep, "yaw-step", 0.1, "radians of orbit added per frame")
	cmd.Flags().Float64Var(&distance, "distance", 2.5, "camera distance as a multiple of the mesh's bounding diagonal")
	cmd.Flags().Float64SliceVar(&lightDir, "light", []float64{0.4, 0.8, 0.4}, "directional light vector, x,y,z")
	_ = cmd.MarkFlagRequired("mesh")

	return cmd
}
