// Copyright (C) 2021 Karl Lark
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/tiff"

	nl "github.com/karllark/stcal/internal"
	"github.com/karllark/stcal/internal/align"
	"github.com/karllark/stcal/internal/rest"
	"github.com/karllark/stcal/internal/wcs"
)

const version = "0.1.2"

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var in    = flag.String("in", "", "read input transform from JSON `file`")
var to    = flag.String("to", "", "read output transform from JSON `file`")
var shape = flag.String("shape", "", "pixel grid shape as `rows,cols`, overrides the input transform's own shape")

var out   = flag.String("out", "pixmap.json", "save pixel map as JSON to `file`")
var tif   = flag.String("tiff", "", "save 16-bit TIFF of the pixel displacement magnitudes to `file`")
var log   = flag.String("log", "%auto", "save log output to `file`. `%auto` replaces suffix of output file with .log")
var debug = flag.Bool("debug", false, "print debug output, including derived bounding boxes")

func main() {
	logWriter:=os.Stdout
	start:=time.Now()
	flag.Usage=func(){
 	    fmt.Fprintf(logWriter, `Pixmap Copyright (c) 2021 Karl Lark
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (compute|serve|version)

Commands:
  compute Compute the pixel map between the -in and -to transforms
  serve   Serve the pixel map REST API on port 8080
  version Show version information

Flags:
`, os.Args[0])
	    flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log=="%auto" {
		if *out!="" {
			*log=strings.TrimSuffix(*out, filepath.Ext(*out))+".log"
		} else {
			*log=""
		}
	}
	if *log!="" {
		err:=nl.LogAlsoToFile(*log)
		if err!=nil { nl.LogFatalf("Unable to open logfile '%s'\n", *log) }
	}
	nl.Debug=*debug

	// Enable CPU profiling if flagged
    if *cpuprofile != "" {
        f, err := os.Create(*cpuprofile)
        if err != nil {
            nl.LogFatal("Could not create CPU profile: ", err)
        }
        defer f.Close()
        if err := pprof.StartCPUProfile(f); err != nil {
            nl.LogFatal("Could not start CPU profile: ", err)
        }
        defer pprof.StopCPUProfile()
    }

    args:=flag.Args()
    if len(args)<1 {
    	flag.Usage()
    	return
    }

	var err error
    switch args[0] {
    case "serve":
    	rest.Serve();

    case "compute":
    	err=cmdCompute(logWriter)

    case "version":
    	fmt.Fprintf(logWriter, "Version %s\n", version)

    case "help", "?":
    	flag.Usage()

    default:
    	fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
    	flag.Usage()
    	return
    }

	now:=time.Now()
	elapsed:=now.Sub(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)

	// Store memory profile if flagged
    if *memprofile != "" {
        f, err := os.Create(*memprofile)
        if err != nil {
            nl.LogFatal("Could not create memory profile: ", err)
        }
        defer f.Close()
        if err := pprof.Lookup("allocs").WriteTo(f,0); err != nil {
            nl.LogFatal("Could not write allocation profile: ", err)
        }
    }

    if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}
    nl.LogSync()
}

// Perform the pixel map computation command
func cmdCompute(logWriter *os.File) error {
	if *in=="" || *to=="" {
		return fmt.Errorf("compute needs both -in and -to transform files")
	}

	inDesc, err:=wcs.LoadDescription(*in)
	if err!=nil { return err }
	inTrans, err:=inDesc.Transform()
	if err!=nil { return err }

	toDesc, err:=wcs.LoadDescription(*to)
	if err!=nil { return err }
	toTrans, err:=toDesc.Transform()
	if err!=nil { return err }

	gridShape, err:=parseShape(*shape)
	if err!=nil { return err }

	pixmap, err:=align.CalcPixmap(inTrans, toTrans, gridShape)
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "Computed %dx%dx2 pixel map\n", pixmap.Rows, pixmap.Cols)

	if *out!="" {
		if err:=writePixmapJSON(pixmap, *out); err!=nil { return err }
		fmt.Fprintf(logWriter, "Saved pixel map to %s\n", *out)
	}
	if *tif!="" {
		if err:=writeDisplacementTIFF16(pixmap, *tif); err!=nil { return err }
		fmt.Fprintf(logWriter, "Saved displacement TIFF to %s\n", *tif)
	}
	return nil
}

// Parses a "rows,cols" flag value. Empty input parses to nil
func parseShape(s string) ([]int32, error) {
	if s=="" { return nil, nil }
	parts:=strings.Split(s, ",")
	if len(parts)!=2 {
		return nil, fmt.Errorf("shape must be given as rows,cols, got '%s'", s)
	}
	shape:=make([]int32, 2)
	for i, part:=range parts {
		v, err:=strconv.ParseInt(strings.TrimSpace(part), 10, 32)
		if err!=nil || v<=0 {
			return nil, fmt.Errorf("shape axes must be positive integers, got '%s'", s)
		}
		shape[i]=int32(v)
	}
	return shape, nil
}

func writePixmapJSON(p *align.Pixmap, fileName string) error {
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	enc:=json.NewEncoder(writer)
	return enc.Encode(p)
}

// Write the per-pixel displacement magnitudes of a pixel map to 16-bit
// grayscale TIFF, scaled to the full value range for inspection.
func writeDisplacementTIFF16(p *align.Pixmap, fileName string) error {
	width, height:=int(p.Cols), int(p.Rows)
	dists:=make([]float64, width*height)
	min, max:=math.Inf(1), math.Inf(-1)
	for row:=0; row<height; row++ {
		for col:=0; col<width; col++ {
			x, y:=p.At(int32(row), int32(col))
			dx, dy:=x-float64(col), y-float64(row)
			d:=math.Sqrt(dx*dx + dy*dy)
			// replace NaNs from out-of-range mappings with zeros for export
			if math.IsNaN(d) { d=0 }
			dists[col + row*width]=d
			if d<min { min=d }
			if d>max { max=d }
		}
	}
	scale:=0.0
	if max>min { scale=1.0/(max-min) }

	img:=image.NewGray16(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	for row:=0; row<height; row++ {
		for col:=0; col<width; col++ {
			v:=(dists[col + row*width]-min)*scale
			img.SetGray16(col, row, color.Gray16{uint16(v*65535)})
		}
	}

	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
