package main

import (
	"flag"
	"os"

	"github.com/openlanes/lanelet"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var (
	in         = flag.String("in", "map.osm", "Input map file. The handler is picked by the file extension")
	out        = flag.String("out", "map.geojson", "Output map file. The handler is picked by the file extension")
	originLat  = flag.Float64("origin-lat", 0.0, "Latitude of the projection origin")
	originLon  = flag.Float64("origin-lon", 0.0, "Longitude of the projection origin")
	inFormat   = flag.String("in-format", "", "Handler name for the input, overrides the extension")
	outFormat  = flag.String("out-format", "", "Handler name for the output, overrides the extension")
	configFile = flag.String("config", "", "YAML file with format handler options")
	strict     = flag.Bool("strict", false, "Fail on the first malformed element instead of skipping it")
	logLevel   = flag.String("log.level", "info", "Log level: debug / info / warn / error")
)

var log = logrus.WithField("module", "laneletconv")

func main() {
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Bad log level: %v", err)
	}
	logrus.SetLevel(level)

	config := lanelet.Configuration{}
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			log.Fatalf("Can't read config file: %v", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			log.Fatalf("Can't parse config file: %v", err)
		}
	}

	origin := lanelet.NewOrigin(*originLat, *originLon)
	projector := lanelet.NewMercatorProjector(origin)

	loadOptions := []func(*lanelet.IOOptions){lanelet.WithConfiguration(config)}
	if *inFormat != "" {
		loadOptions = append(loadOptions, lanelet.WithFormat(*inFormat))
	}

	var m *lanelet.LaneletMap
	if *strict {
		m, err = lanelet.Load(*in, projector, loadOptions...)
		if err != nil {
			log.Fatalf("Can't load map: %v", err)
		}
	} else {
		var diagnostics lanelet.ErrorMessages
		m, diagnostics, err = lanelet.LoadRobust(*in, projector, loadOptions...)
		if err != nil {
			log.Fatalf("Can't load map: %v", err)
		}
		for _, message := range diagnostics {
			log.Warnf("Skipped on load: %s", message)
		}
	}
	log.Infof("Loaded %d points, %d linestrings, %d lanelets, %d regulatory elements",
		len(m.Points), len(m.LineStrings), len(m.Lanelets), len(m.RegulatoryElements))

	writeOptions := []func(*lanelet.IOOptions){lanelet.WithConfiguration(config)}
	if *outFormat != "" {
		writeOptions = append(writeOptions, lanelet.WithFormat(*outFormat))
	}

	if *strict {
		if err := lanelet.Write(*out, m, projector, writeOptions...); err != nil {
			log.Fatalf("Can't write map: %v", err)
		}
	} else {
		diagnostics, err := lanelet.WriteRobust(*out, m, projector, writeOptions...)
		if err != nil {
			log.Fatalf("Can't write map: %v", err)
		}
		for _, message := range diagnostics {
			log.Warnf("Skipped on write: %s", message)
		}
	}
	log.Infof("Written '%s'", *out)
}
