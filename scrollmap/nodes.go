package scrollmap

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scroll-map/engine"
	"scroll-map/viewport"
)

// EarthRadius is in miles, so one world unit is one mile.
const EarthRadius = 3958.8

// LatLon is a geographic position in degrees.
type LatLon struct {
	Lat, Lon float64
}

// Validate reports whether n is a real position on the globe.
func (n LatLon) Validate() error {
	if n.Lat < -90 || n.Lat > 90 || n.Lon < -180 || n.Lon > 180 || math.IsNaN(n.Lat) || math.IsNaN(n.Lon) {
		return fmt.Errorf("(%v, %v) out of range", n.Lat, n.Lon)
	}
	return nil
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// Project maps nodes to world points with an equirectangular projection,
// using the mean latitude for the horizontal stretch. North is up: y grows
// southwards to match screen space.
func Project(nodes []LatLon) []viewport.Point {
	if len(nodes) == 0 {
		return nil
	}
	sumLat := 0.0
	for _, n := range nodes {
		sumLat += n.Lat
	}
	aspect := math.Cos(rad(sumLat / float64(len(nodes))))

	points := make([]viewport.Point, len(nodes))
	for i, n := range nodes {
		points[i] = viewport.Point{
			X: EarthRadius * rad(n.Lon) * aspect,
			Y: -EarthRadius * rad(n.Lat),
		}
	}
	return points
}

// ParseNodes reads one "lat,lon" or "lat lon" pair per line. Blank lines and
// lines starting with # are skipped.
func ParseNodes(r io.Reader) ([]LatLon, error) {
	var nodes []LatLon
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"lat,lon\", got %q", line, text)
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad longitude: %w", line, err)
		}
		n := LatLon{Lat: lat, Lon: lon}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		nodes = append(nodes, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Loader reads node files. Files ending in .star are run as node scripts;
// everything else is parsed as text.
type Loader struct {
	Scripts *engine.Runner
	Params  map[string]interface{}
}

func NewLoader(params map[string]interface{}) *Loader {
	return &Loader{Scripts: engine.NewRunner(), Params: params}
}

func (l *Loader) Load(path string) ([]LatLon, error) {
	if strings.EqualFold(filepath.Ext(path), ".star") {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open node script: %w", err)
		}
		pairs, err := l.Scripts.Nodes(filepath.Base(path), string(src), l.Params)
		if err != nil {
			return nil, err
		}
		nodes := make([]LatLon, len(pairs))
		for i, p := range pairs {
			nodes[i] = LatLon{Lat: p[0], Lon: p[1]}
			if err := nodes[i].Validate(); err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", path, engine.NodesGlobal, i, err)
			}
		}
		return nodes, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open nodes file: %w", err)
	}
	defer f.Close()
	nodes, err := ParseNodes(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}
