// cmd/tangentplan/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// tangentplan reads a plan request from a file (or stdin), runs it through
// the planner, and writes the adjusted waypoint list to stdout. It performs
// no planning logic of its own; it is a thin harness around the planner,
// util, and wire packages.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mmp/tangentplan/log"
	"github.com/mmp/tangentplan/planner"
	"github.com/mmp/tangentplan/util"
	"github.com/mmp/tangentplan/wire"
)

const usageText = "usage: tangentplan [options] [request-file] reads a plan request from request-file, or from stdin if omitted, and writes the adjusted waypoint list to stdout.\n\noptions:\n"

func main() {
	compress := flag.Bool("compress", false, "the msgpack request/response is flate-compressed")
	jsonMode := flag.Bool("json", false, "read the request and write the response as JSON instead of msgpack")
	cache := flag.Bool("cache", false, "cache the adjusted waypoint response across runs, keyed by request hash")
	debug := flag.Bool("debug", false, "print a deterministic-order graph-size summary to stderr")
	bufferOverride := flag.String("buffer", "", "override the request's obstacle buffer size, in meters")
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "directory for log files (default: user config dir)")
	flag.Usage = func() {
		wrapped, _ := util.WrapText(usageText, 78, 0, false, false)
		fmt.Fprint(os.Stderr, wrapped)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(flag.Args()) > 1 {
		flag.Usage()
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)

	in := os.Stdin
	if len(flag.Args()) == 1 {
		f, err := os.Open(flag.Args()[0])
		if err != nil {
			lg.Errorf("%v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		lg.Errorf("reading request: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fail := func(err error) {
		lg.Errorf("%v", err)
		if *jsonMode {
			if b, mErr := json.Marshal(wire.NewPlanFailure(err)); mErr == nil {
				fmt.Println(string(b))
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	var cacheKey string
	if *cache {
		if sum, err := util.Hash(bytes.NewReader(data)); err != nil {
			lg.Errorf("hashing request: %v", err)
		} else {
			cacheKey = hex.EncodeToString(sum) + ".response"
			var resp wire.PlanResponse
			if _, err := util.CacheRetrieveObject(cacheKey, &resp); err == nil {
				lg.Infof("serving cached response for request hash %s", cacheKey)
				writeResponse(lg, resp, *jsonMode, *compress)
				return
			}
		}
	}

	var req wire.PlanRequest
	if *jsonMode {
		for _, dup := range util.FindDuplicateJSONKeys(data) {
			lg.Warnf("duplicate JSON key %q at %q", dup.Key, dup.Path)
		}

		var el util.ErrorLogger
		util.CheckJSON[wire.PlanRequest](data, &el)
		if el.HaveErrors() {
			fail(fmt.Errorf("request does not match the expected shape:\n%s", el.String()))
			return
		}

		if err := util.UnmarshalJSON(bytes.NewReader(data), &req); err != nil {
			fail(fmt.Errorf("decoding JSON request: %w", err))
			return
		}
	} else if err := wire.Decode(bytes.NewReader(data), &req, *compress); err != nil {
		fail(fmt.Errorf("decoding request: %w", err))
		return
	}

	cfg := req.PlannerConfig()
	if *bufferOverride != "" {
		v, err := util.Atof(*bufferOverride)
		if err != nil {
			fail(fmt.Errorf("parsing -buffer: %w", err))
			return
		}
		cfg.BufferSize = float32(v)
	}

	p := planner.New(cfg)
	p.SetLogger(lg)
	p.Init(req.FlightZones(), req.ObstacleList())

	if *debug {
		b, _ := json.Marshal(p.DebugSummary())
		fmt.Fprintln(os.Stderr, string(b))
	}

	adjusted := planner.GetAdjustPath(p, req.PlaneState(), req.WaypointList())
	resp := wire.NewPlanResponse(adjusted)

	if cacheKey != "" {
		if err := util.CacheStoreObject(cacheKey, resp); err != nil {
			lg.Warnf("caching response: %v", err)
		}
		if err := util.CacheCullObjects(64 << 20); err != nil {
			lg.Warnf("culling cache: %v", err)
		}
	}

	writeResponse(lg, resp, *jsonMode, *compress)
}

func writeResponse(lg *log.Logger, resp wire.PlanResponse, jsonMode, compress bool) {
	if jsonMode {
		b, err := json.Marshal(wire.NewPlanResult(resp))
		if err != nil {
			lg.Errorf("encoding JSON response: %v", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	if err := wire.Encode(os.Stdout, resp, compress); err != nil {
		lg.Errorf("encoding response: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
