package category

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Point is a latitude, longitude pair
type Point [2]float64

// ColorStep colours any count strictly above Above
type ColorStep struct {
	Above int    `yaml:"above" json:"above"`
	Color string `yaml:"color" json:"color"`
}

type rawEntry struct {
	Label    string   `yaml:"label"`
	Codes    []string `yaml:"codes"`
	Center   *Point   `yaml:"center"`
	Boundary []Point  `yaml:"boundary"`
}

type rawCatalog struct {
	Version       int         `yaml:"version"`
	Crime         []rawEntry  `yaml:"crime"`
	AllRegions    string      `yaml:"all_regions"`
	Regions       []rawEntry  `yaml:"regions"`
	DefaultRegion string      `yaml:"default_region"`
	Descent       []rawEntry  `yaml:"descent"`
	Genders       []string    `yaml:"genders"`
	ColorScale    []ColorStep `yaml:"color_scale"`
	ColorFloor    string      `yaml:"color_floor"`
	ChartColors   []string    `yaml:"chart_colors"`
}

// Catalog holds every label table the dashboard filters use
type Catalog struct {
	Crime   Table
	Regions Table
	Descent Table

	// label order as declared, for UI pickers
	CrimeLabels   []string
	RegionLabels  []string
	DescentLabels []string
	Genders       []string

	centers       map[string]Point
	boundaries    map[string][]Point
	areaRegion    map[string]string
	defaultRegion string
	colorScale    []ColorStep
	colorFloor    string
	chartColors   []string
}

// Default returns the catalog embedded in the binary
// it panics if the embedded file is broken since that is a build defect
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("category: embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file on disk
func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and checks a YAML catalog
func Parse(b []byte) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(b, &rc); err != nil {
		return nil, err
	}
	if len(rc.Crime) == 0 || len(rc.Regions) == 0 {
		return nil, fmt.Errorf("catalog needs crime and regions tables")
	}

	c := &Catalog{
		Genders:       rc.Genders,
		centers:       map[string]Point{},
		boundaries:    map[string][]Point{},
		areaRegion:    map[string]string{},
		defaultRegion: rc.DefaultRegion,
		colorScale:    rc.ColorScale,
		colorFloor:    rc.ColorFloor,
		chartColors:   rc.ChartColors,
	}
	var err error
	if c.Crime, c.CrimeLabels, err = table("crime", rc.Crime); err != nil {
		return nil, err
	}
	if c.Regions, c.RegionLabels, err = table("regions", rc.Regions); err != nil {
		return nil, err
	}
	if c.Descent, c.DescentLabels, err = table("descent", rc.Descent); err != nil {
		return nil, err
	}

	var all []string
	for _, e := range rc.Regions {
		if e.Center != nil {
			c.centers[e.Label] = *e.Center
		}
		if len(e.Boundary) > 0 {
			c.boundaries[e.Label] = e.Boundary
		}
		for _, a := range e.Codes {
			if prev, dup := c.areaRegion[a]; dup {
				return nil, fmt.Errorf("area %q is in both %s and %s", a, prev, e.Label)
			}
			c.areaRegion[a] = e.Label
			all = append(all, a)
		}
	}
	// the catch-all region resolves to every area so it still bounds the query
	if rc.AllRegions != "" {
		c.Regions[rc.AllRegions] = all
		c.RegionLabels = append([]string{rc.AllRegions}, c.RegionLabels...)
	}

	slices.SortFunc(c.colorScale, func(a, b ColorStep) int { return b.Above - a.Above })
	return c, nil
}

func table(name string, entries []rawEntry) (Table, []string, error) {
	t := make(Table, len(entries))
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Label == "" {
			return nil, nil, fmt.Errorf("%s: entry without label", name)
		}
		if _, dup := t[e.Label]; dup {
			return nil, nil, fmt.Errorf("%s: duplicate label %q", name, e.Label)
		}
		t[e.Label] = e.Codes
		labels = append(labels, e.Label)
	}
	return t, labels, nil
}

// RegionOf returns the region an area belongs to, or "" when unknown
func (c *Catalog) RegionOf(area string) string { return c.areaRegion[area] }

// RegionCenter returns the map center of a region, falling back to the default region
func (c *Catalog) RegionCenter(region string) Point {
	if p, ok := c.centers[region]; ok {
		return p
	}
	return c.centers[c.defaultRegion]
}

// RegionBoundary returns the outline of the first region that owns any of areas,
// falling back to the default region
func (c *Catalog) RegionBoundary(areas []string) []Point {
	for _, a := range areas {
		if r, ok := c.areaRegion[a]; ok {
			if b, ok := c.boundaries[r]; ok {
				return b
			}
		}
	}
	return c.boundaries[c.defaultRegion]
}

// RegionColor buckets an incident count onto the map colour scale
func (c *Catalog) RegionColor(count int) string {
	for _, s := range c.colorScale {
		if count > s.Above {
			return s.Color
		}
	}
	return c.colorFloor
}

// ColorScale returns the colour steps from the highest threshold down
func (c *Catalog) ColorScale() []ColorStep { return slices.Clone(c.colorScale) }

// ChartColor cycles through the chart palette
func (c *Catalog) ChartColor(i int) string {
	n := len(c.chartColors)
	if n == 0 {
		return ""
	}
	i %= n
	if i < 0 {
		i += n
	}
	return c.chartColors[i]
}

// ChartColors returns the chart palette
func (c *Catalog) ChartColors() []string { return slices.Clone(c.chartColors) }
