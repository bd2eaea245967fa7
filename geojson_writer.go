package lanelet

import (
	"io"
	"sort"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	geojsonExtension  = ".geojson"
	geojsonFormatName = "geojson"
)

func init() {
	// Write-only format: loading a .geojson file reports UnsupportedFormat
	RegisterFormat(geojsonExtension, geojsonFormatName, nil, newGeoJSONWriter)
}

type geojsonWriter struct {
	projector Projector
	config    Configuration
}

func newGeoJSONWriter(projector Projector, config Configuration) Writer {
	return &geojsonWriter{
		projector: projector,
		config:    config,
	}
}

// Write Exports a lanelet map as a GeoJSON feature collection for quick
// inspection in GIS viewers. Lanelets become polygon features; with the
// 'include_linestrings' option (default true) every linestring additionally
// becomes a linestring feature carrying its attributes.
func (w *geojsonWriter) Write(out io.Writer, m *LaneletMap) (ErrorMessages, error) {
	includeLineStrings := w.config.BoolOr("include_linestrings", true)
	errs := ErrorMessages{}
	collection := geojson.NewFeatureCollection()

	for _, id := range sortedIDs(lo.Keys(m.Lanelets)) {
		lanelet := m.Lanelets[id]
		feature, err := laneletFeature(lanelet)
		if err != nil {
			errs = append(errs, (&WriteError{ElementID: id, Message: err.Error()}).Error())
			continue
		}
		collection.AddFeature(feature)
	}
	if includeLineStrings {
		for _, id := range sortedIDs(lo.Keys(m.LineStrings)) {
			collection.AddFeature(lineStringFeature(m.LineStrings[id]))
		}
	}

	data, err := collection.MarshalJSON()
	if err != nil {
		return errs, errors.Wrap(err, "can not encode geojson output")
	}
	if _, err := out.Write(data); err != nil {
		return errs, errors.Wrap(err, "can not write geojson output")
	}
	return errs, nil
}

// laneletFeature builds a polygon feature out of the lanelet bounds
func laneletFeature(lanelet *Lanelet) (*geojson.Feature, error) {
	if lanelet.LeftBound == nil || lanelet.RightBound == nil {
		return nil, errors.New("lanelet must have both bounds")
	}
	ring := [][]float64{}
	for _, gp := range lanelet.LeftBound.GeoPoints() {
		ring = append(ring, []float64{gp.Lon, gp.Lat})
	}
	right := lanelet.RightBound.GeoPoints()
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, []float64{right[i].Lon, right[i].Lat})
	}
	if len(ring) < 3 {
		return nil, errors.New("lanelet bounds carry too few points for a polygon")
	}
	ring = append(ring, ring[0])

	feature := geojson.NewFeature(geojson.NewPolygonGeometry([][][]float64{ring}))
	feature.SetProperty("id", int64(lanelet.ID))
	feature.SetProperty("feature_type", TypeLanelet)
	ruleNames := lo.Map(lanelet.RegulatoryElements, func(re RegulatoryElement, _ int) string {
		return re.RuleName()
	})
	sort.Strings(ruleNames)
	feature.SetProperty("regulatory_elements", lo.Uniq(ruleNames))
	for key, value := range lanelet.Attributes {
		feature.SetProperty(key, value)
	}
	return feature, nil
}

// lineStringFeature builds a linestring feature with attributes and length
func lineStringFeature(lineString *LineString) *geojson.Feature {
	coords := lo.Map(lineString.GeoPoints(), func(gp GeoPoint, _ int) []float64 {
		return []float64{gp.Lon, gp.Lat}
	})
	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
	feature.SetProperty("id", int64(lineString.ID))
	feature.SetProperty("length_m", lineString.Length())
	for key, value := range lineString.Attributes {
		feature.SetProperty(key, value)
	}
	return feature
}
