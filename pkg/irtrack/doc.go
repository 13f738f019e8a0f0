// Package irtrack localizes a rectangular planar target — a monitor or
// display — in a monocular grayscale image using a passive infrared marker
// pattern printed along the plane's four edges.
//
// # Quick Start
//
//	params := irtrack.DefaultParams()
//	tracker, err := irtrack.NewTracker(params)
//	if err != nil {
//		log.Fatal(err)
//	}
//	loc, err := tracker.Locate(gray, intrinsics, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if loc == nil {
//		// frame rejected: no plane visible this frame
//		return
//	}
//	fmt.Println(loc.RVec, loc.TVec, loc.Img2Plane)
//
// # Architecture
//
// Locate runs a fixed, single-threaded pipeline over one frame:
//
//	image -> binarize -> contours -> (fragments, ellipses) -> feature lines
//	      -> orientation -> combinations -> pose solve -> plane projection
//
// Every stage is pure with respect to the tracker instance: TrackerParams
// and the derived ObjectPointMap are read-only after construction, and all
// per-frame intermediates are scoped to a single Locate call. There is no
// background processing, no subscriber channel, and no notion of a tracker
// "state" carried between frames — each frame stands alone.
package irtrack
