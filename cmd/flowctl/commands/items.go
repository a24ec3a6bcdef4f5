package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/flowlayout"
)

// ItemFile describes a container and the children to lay out in it.
type ItemFile struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	HeightMode string `toml:"height_mode" yaml:"height_mode"` // wrap, exact or at_most
	Items      []Item `toml:"items" yaml:"items"`
}

// Item is one child, optionally repeated.
type Item struct {
	Label  string                   `toml:"label" yaml:"label"`
	Width  int                      `toml:"width" yaml:"width"`
	Height int                      `toml:"height" yaml:"height"`
	Margin flowlayout.PaddingConfig `toml:"margin" yaml:"margin"`
	Hidden bool                     `toml:"hidden" yaml:"hidden"`
	Repeat int                      `toml:"repeat" yaml:"repeat"`
}

// child is what the adapter hands to the measurer.
type child struct {
	label string
	item  Item
}

// LoadItems reads an item file in TOML or YAML.
func LoadItems(path string) (ItemFile, error) {
	format, err := flowlayout.FormatFromPath(path)
	if err != nil {
		return ItemFile{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ItemFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	items, err := ParseItems(data, format)
	if err != nil {
		return ItemFile{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

// ParseItems decodes an item file.
func ParseItems(data []byte, format flowlayout.Format) (ItemFile, error) {
	var f ItemFile
	var err error
	switch format {
	case flowlayout.FormatTOML:
		err = toml.Unmarshal(data, &f)
	case flowlayout.FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return f, fmt.Errorf("%q: %w", format, flowlayout.ErrUnknownFormat)
	}
	if err != nil {
		return ItemFile{}, err
	}
	if f.Width <= 0 {
		return ItemFile{}, fmt.Errorf("width must be positive, got %d", f.Width)
	}
	return f, nil
}

// Spec returns the measure spec the file asks for.
func (f ItemFile) Spec() (flowlayout.MeasureSpec, error) {
	spec := flowlayout.MeasureSpec{Width: f.Width, Height: f.Height}
	switch strings.ToLower(f.HeightMode) {
	case "", "wrap":
		spec.HeightMode = flowlayout.HeightWrap
		if f.Height > 0 {
			// A height without a mode caps the viewport
			spec.HeightMode = flowlayout.HeightAtMost
		}
	case "exact":
		spec.HeightMode = flowlayout.HeightExact
	case "at_most", "at-most":
		spec.HeightMode = flowlayout.HeightAtMost
	default:
		return spec, fmt.Errorf("unknown height mode %q", f.HeightMode)
	}
	return spec, nil
}

// Expand flattens repeated items into one child per index.
func (f ItemFile) Expand() []child {
	var out []child
	for _, it := range f.Items {
		n := max(it.Repeat, 1)
		for i := 0; i < n; i++ {
			label := it.Label
			if label == "" {
				label = fmt.Sprintf("#%d", len(out))
			} else if n > 1 {
				label = fmt.Sprintf("%s%d", it.Label, i+1)
			}
			out = append(out, child{label: label, item: it})
		}
	}
	return out
}

var measureItem = flowlayout.MeasureFunc(func(c flowlayout.Child, _ flowlayout.Constraints) flowlayout.Measurement {
	it := c.(child).item
	return flowlayout.Measurement{
		Width:  it.Width,
		Height: it.Height,
		Margin: it.Margin.Insets(),
		Hidden: it.Hidden,
	}
})
