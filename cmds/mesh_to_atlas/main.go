package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/uvatlas/uvatlas"
)

func main() {
	var configPath string
	var visibilityPath string
	var visibilityMeshPath string
	var summaryPath string
	cfg := uvatlas.DefaultConfig()
	flag.StringVar(&configPath, "config", "", "optional TOML file with atlas settings")
	flag.StringVar(&visibilityPath, "visibility", "",
		"optional JSON file listing the cameras which observed each vertex")
	flag.StringVar(&visibilityMeshPath, "visibility-mesh", "",
		"optional STL mesh whose vertices the visibility file refers to")
	flag.StringVar(&summaryPath, "summary", "", "optional path for a JSON summary of the pages")
	flag.IntVar(&cfg.TextureSide, "texture-side", cfg.TextureSide, "side length of each page")
	flag.IntVar(&cfg.GutterSize, "gutter", cfg.GutterSize, "padding around each chart")
	flag.IntVar(&cfg.Margin, "margin", cfg.Margin, "minimum distance from image borders")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency,
		"maximum Goroutines for projection (0 uses GOMAXPROCS)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mesh_to_atlas [flags] <mesh.stl> <cameras.json> <output.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		flag.Usage()
		os.Exit(1)
	}
	meshPath, camerasPath, outputPath := args[0], args[1], args[2]

	if configPath != "" {
		essentials.Must(ReadConfig(configPath, &cfg))
	}
	essentials.Must(cfg.Validate())

	log.Println("Loading mesh...")
	tris, err := uvatlas.Load(meshPath, model3d.ReadSTL)
	essentials.Must(err)
	mesh := uvatlas.NewMeshTriangles(tris)
	log.Printf(" - %d triangles, %d vertices", mesh.NumTriangles(), len(mesh.Vertices))

	log.Println("Loading cameras...")
	cameras, err := uvatlas.Load(camerasPath, uvatlas.ReadCameras)
	essentials.Must(err)

	var vis uvatlas.PointVisibility
	if visibilityPath != "" {
		log.Println("Loading visibility...")
		vis, err = uvatlas.Load(visibilityPath, uvatlas.ReadPointVisibility)
		essentials.Must(err)
		if visibilityMeshPath != "" {
			log.Println("Remapping visibility...")
			refTris, err := uvatlas.Load(visibilityMeshPath, model3d.ReadSTL)
			essentials.Must(err)
			ref := uvatlas.NewMeshTriangles(refTris)
			if len(vis) != len(ref.Vertices) {
				essentials.Die(fmt.Sprintf("visibility has %d entries but %s has %d vertices",
					len(vis), visibilityMeshPath, len(ref.Vertices)))
			}
			vis = uvatlas.RemapVisibility(ref, vis, mesh)
		}
	} else {
		if visibilityMeshPath != "" {
			essentials.Die("-visibility-mesh requires -visibility")
		}
		vis = uvatlas.AllCamerasVisibility(len(mesh.Vertices), len(cameras))
	}

	log.Println("Creating atlas...")
	projector := &uvatlas.MeshProjector{Mesh: mesh, Cameras: cameras}
	atlas, err := uvatlas.NewAtlas(mesh, vis, projector, cfg)
	essentials.Must(err)
	if dropped := mesh.NumTriangles() - atlas.NumTriangles(); dropped > 0 {
		log.Printf(" - %d triangles are not fully visible from any camera", dropped)
	}
	for i, p := range atlas.Pages {
		log.Printf(" - page %d: %d charts, %.1f%% used", i, len(p.Charts),
			100*p.Utilization(atlas.TextureSide))
	}

	log.Println("Writing output...")
	essentials.Must(uvatlas.Save(outputPath, atlas, uvatlas.WriteAtlas))
	if summaryPath != "" {
		essentials.Must(uvatlas.Save(summaryPath, NewSummary(atlas), WriteSummary))
	}
}

// ReadConfig overrides fields of cfg with the values in a TOML file.
//
// Flags passed explicitly on the command line take precedence.
func ReadConfig(path string, cfg *uvatlas.Config) error {
	fileCfg := *cfg
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	if !explicit["texture-side"] {
		cfg.TextureSide = fileCfg.TextureSide
	}
	if !explicit["gutter"] {
		cfg.GutterSize = fileCfg.GutterSize
	}
	if !explicit["margin"] {
		cfg.Margin = fileCfg.Margin
	}
	if !explicit["concurrency"] {
		cfg.Concurrency = fileCfg.Concurrency
	}
	return nil
}

type Summary struct {
	TextureSide int            `json:"texture_side"`
	GutterSize  int            `json:"gutter_size"`
	Pages       []*PageSummary `json:"pages"`
}

type PageSummary struct {
	Charts      []*ChartSummary `json:"charts"`
	Utilization float64         `json:"utilization"`
}

type ChartSummary struct {
	ID          int    `json:"id"`
	Triangles   []int  `json:"triangles"`
	RefCameraID int    `json:"ref_camera"`
	SourceLU    [2]int `json:"source_lu"`
	SourceRD    [2]int `json:"source_rd"`
	TargetLU    [2]int `json:"target_lu"`
}

func NewSummary(a *uvatlas.Atlas) *Summary {
	res := &Summary{TextureSide: a.TextureSide, GutterSize: a.GutterSize}
	for _, p := range a.Pages {
		page := &PageSummary{Utilization: p.Utilization(a.TextureSide)}
		for _, c := range p.Charts {
			page.Charts = append(page.Charts, &ChartSummary{
				ID:          c.ID,
				Triangles:   c.TriangleIDs,
				RefCameraID: c.RefCameraID,
				SourceLU:    [2]int{c.SourceLU.X, c.SourceLU.Y},
				SourceRD:    [2]int{c.SourceRD.X, c.SourceRD.Y},
				TargetLU:    [2]int{c.TargetLU.X, c.TargetLU.Y},
			})
		}
		res.Pages = append(res.Pages, page)
	}
	return res
}

func WriteSummary(w io.Writer, s *Summary) error {
	return json.NewEncoder(w).Encode(s)
}
