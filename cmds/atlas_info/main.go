package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/uvatlas/uvatlas"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "print every chart placement")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: atlas_info [flags] <input.bin>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	log.Println("Loading atlas...")
	atlas, err := uvatlas.Load(inputPath, uvatlas.ReadAtlas)
	essentials.Must(err)

	fmt.Println("Texture side:", atlas.TextureSide)
	fmt.Println("Gutter size:", atlas.GutterSize)
	fmt.Println("Number of pages:", len(atlas.Pages))
	fmt.Println("Number of charts:", atlas.NumCharts())
	fmt.Printf("Textured triangles: %d/%d\n", atlas.NumTriangles(), len(atlas.TriangleCameras))
	for i, p := range atlas.Pages {
		fmt.Printf("Page %d: %d charts, %d triangles, %.1f%% used\n", i, len(p.Charts),
			p.NumTriangles(), 100*p.Utilization(atlas.TextureSide))
		if verbose {
			for _, c := range p.Charts {
				fmt.Printf("  chart %d: camera=%d size=%dx%d target=(%d, %d)\n", c.ID,
					c.RefCameraID, c.Width(), c.Height(), c.TargetLU.X, c.TargetLU.Y)
			}
		}
	}
}
