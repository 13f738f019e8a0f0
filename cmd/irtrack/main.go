// Package main provides the CLI wrapper for the IR-plane tracker.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"gocv.io/x/gocv"

	"github.com/pupil-labs/ir-plane-tracker/internal/config"
	"github.com/pupil-labs/ir-plane-tracker/pkg/irtrack"
)

var version = "0.1.0"

func main() {
	imagePath := flag.String("image", "", "Path to a grayscale image file to localize")
	configPath := flag.String("config", "", "Path to TOML tracker-params file")
	intrinsicsPath := flag.String("intrinsics", "", "Path to TOML camera-intrinsics file (overrides -fx/-fy/-cx/-cy)")
	fx := flag.Float64("fx", 800, "Camera focal length fx in pixels")
	fy := flag.Float64("fy", 800, "Camera focal length fy in pixels")
	cx := flag.Float64("cx", 0, "Camera principal point cx (defaults to image width/2)")
	cy := flag.Float64("cy", 0, "Camera principal point cy (defaults to image height/2)")
	asJSON := flag.Bool("json", false, "Print the result as JSON")
	debug := flag.Bool("debug", false, "Print per-stage debug counts to stderr")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "irtrack - IR-plane tracker CLI\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -image frame.png [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -image frame.png                  # Localize with default intrinsics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -image frame.png -config p.toml   # Use custom tracker params\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -image frame.png -json            # Print result as JSON\n", os.Args[0])
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("irtrack version %s\n", version)
		os.Exit(0)
	}

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	params, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load tracker config: %v", err)
	}

	tracker, err := irtrack.NewTracker(params)
	if err != nil {
		log.Fatalf("Failed to create tracker: %v", err)
	}

	mat := gocv.IMRead(*imagePath, gocv.IMReadGrayScale)
	if mat.Empty() {
		log.Fatalf("Failed to read image: %s", *imagePath)
	}
	defer mat.Close()

	img := irtrack.GrayImage{Width: mat.Cols(), Height: mat.Rows()}
	img.Pix, err = mat.DataPtrUint8()
	if err != nil {
		log.Fatalf("Failed to read image pixels: %v", err)
	}

	var intrinsics irtrack.CameraIntrinsics
	if *intrinsicsPath != "" {
		intrinsics, err = config.LoadIntrinsics(*intrinsicsPath)
		if err != nil {
			log.Fatalf("Failed to load camera intrinsics: %v", err)
		}
	} else {
		if *cx == 0 {
			*cx = float64(img.Width) / 2
		}
		if *cy == 0 {
			*cy = float64(img.Height) / 2
		}
		intrinsics = irtrack.CameraIntrinsics{FX: *fx, FY: *fy, CX: *cx, CY: *cy}
	}

	var dbg *irtrack.DebugData
	if *debug {
		dbg = &irtrack.DebugData{}
	}

	loc, err := tracker.Locate(img, intrinsics, dbg)
	if err != nil {
		log.Fatalf("Localization failed: %v", err)
	}
	if dbg != nil {
		log.Printf("debug: contours=%d line=%d ellipse=%d fragments=%d ellipses=%d feature_lines=%d combinations=%d",
			len(dbg.ContoursRaw), len(dbg.ContoursLine), len(dbg.ContoursEllipse),
			len(dbg.FragmentsFiltered), len(dbg.EllipsesFiltered), len(dbg.FeatureLines), len(dbg.Combinations))
	}
	if loc == nil {
		if *asJSON {
			fmt.Println(`{"localized": false}`)
		} else {
			fmt.Println("no localization")
		}
		return
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(loc); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		return
	}

	fmt.Printf("rvec=%v tvec=%v reprojection_error=%.3f corners=%v\n",
		loc.RVec, loc.TVec, loc.ReprojectionError, loc.Corners)
}
