// Package scene loads declarative scene documents and builds them into a
// ui.UserInterface.
//
// A document is YAML or TOML, chosen by file extension:
//
//	version: v1.0.0
//	viewport: {width: 80, height: 24}
//	root:
//	  kind: border
//	  children:
//	    - kind: text
//	      text: Hello
//
// The version is a semantic version; only major version v1 is understood.
package scene

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/scenegraph/pkg/errors"
)

// SchemaVersion is the document version written when none is given.
const SchemaVersion = "v1.0.0"

// Format is the encoding of a scene document.
type Format int

const (
	// FormatYAML is a .yaml or .yml document.
	FormatYAML Format = iota
	// FormatTOML is a .toml document.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
	}
}

// Document is a parsed scene file.
type Document struct {
	Version  string   `yaml:"version" toml:"version"`
	Viewport Viewport `yaml:"viewport" toml:"viewport"`
	Root     *Node    `yaml:"root" toml:"root"`

	// dir is the directory relative image paths are resolved against.
	dir string
}

// Viewport is the screen size a document is laid out for.
type Viewport struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Size is a width and height where either may be omitted.
type Size struct {
	Width  *float64 `yaml:"width" toml:"width"`
	Height *float64 `yaml:"height" toml:"height"`
}

// Node describes one node and its subtree. Fields that do not apply to the
// node's kind are ignored.
type Node struct {
	Kind string `yaml:"kind" toml:"kind"`
	Name string `yaml:"name" toml:"name"`

	Width      *float64  `yaml:"width" toml:"width"`
	Height     *float64  `yaml:"height" toml:"height"`
	Min        *Size     `yaml:"min" toml:"min"`
	Max        *Size     `yaml:"max" toml:"max"`
	Margin     []float64 `yaml:"margin" toml:"margin"`
	HAlign     string    `yaml:"halign" toml:"halign"`
	VAlign     string    `yaml:"valign" toml:"valign"`
	Visibility string    `yaml:"visibility" toml:"visibility"`
	Row        int       `yaml:"row" toml:"row"`
	Column     int       `yaml:"column" toml:"column"`
	X          float64   `yaml:"x" toml:"x"`
	Y          float64   `yaml:"y" toml:"y"`
	Color      string    `yaml:"color" toml:"color"`

	// text
	Text string `yaml:"text" toml:"text"`
	Wrap bool   `yaml:"wrap" toml:"wrap"`

	// border, button, window
	Stroke      []float64 `yaml:"stroke" toml:"stroke"`
	StrokeColor string    `yaml:"stroke_color" toml:"stroke_color"`
	Background  string    `yaml:"background" toml:"background"`
	Hover       string    `yaml:"hover" toml:"hover"`
	Title       string    `yaml:"title" toml:"title"`

	// grid
	Rows    []string `yaml:"rows" toml:"rows"`
	Columns []string `yaml:"columns" toml:"columns"`

	// image
	Image     string `yaml:"image" toml:"image"`
	ImageSize *Size  `yaml:"image_size" toml:"image_size"`
	Stretch   string `yaml:"stretch" toml:"stretch"`

	// scroll_bar, scroll_viewer
	Thickness *float64 `yaml:"thickness" toml:"thickness"`

	// scroll_bar
	Orientation string    `yaml:"orientation" toml:"orientation"`
	Range       []float64 `yaml:"range" toml:"range"`
	Value       *float64  `yaml:"value" toml:"value"`
	Step        *float64  `yaml:"step" toml:"step"`

	// scroll_content_presenter, scroll_viewer
	Scroll string `yaml:"scroll" toml:"scroll"`

	Children []Node `yaml:"children" toml:"children"`
}

// Parse decodes a document and checks its version.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		err = fmt.Errorf("unknown format %v", format)
	}
	if err != nil {
		return nil, errors.Wrap("scene.Parse", errors.KindScene, fmt.Errorf("failed to parse %s: %w", format, err))
	}
	if err := doc.checkVersion(); err != nil {
		return nil, errors.Wrap("scene.Parse", errors.KindScene, err)
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.Wrap("scene.Load", errors.KindScene, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.dir = filepath.Dir(path)
	return doc, nil
}

// LoadOptional is Load, except that a missing file yields an empty
// document with no root.
func LoadOptional(path string) (*Document, error) {
	doc, err := Load(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return &Document{Version: SchemaVersion, dir: filepath.Dir(path)}, nil
	}
	return doc, err
}

func (d *Document) checkVersion() error {
	v := strings.TrimSpace(d.Version)
	if v == "" {
		d.Version = SchemaVersion
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid version %q", d.Version)
	}
	if major := semver.Major(v); major != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported version %q (want %s.x.x)", d.Version, semver.Major(SchemaVersion))
	}
	d.Version = v
	return nil
}
