package pipeline

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"flat", false},
		{"mono", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"chart", false},
		{"nodelink", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateForLoad(t *testing.T) {
	// No source
	opts := Options{}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Missing source should fail")
	}

	// Two sources
	opts = Options{Input: "trees.json", URL: "https://example.com/trees.json"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Multiple sources should fail")
	}

	// Mongo collection without URI
	opts = Options{MongoCollection: "trees"}
	if err := opts.ValidateForLoad(); err == nil {
		t.Error("Mongo collection without URI should fail")
	}

	// Valid file source
	opts = Options{Input: "trees.json"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid file source should pass: %v", err)
	}

	// Valid mongo source
	opts = Options{MongoURI: "mongodb://localhost:27017", MongoDatabase: "viz", MongoCollection: "trees"}
	if err := opts.ValidateForLoad(); err != nil {
		t.Errorf("Valid mongo source should pass: %v", err)
	}
}

func TestOptionsIsChart(t *testing.T) {
	opts := Options{}
	if !opts.IsChart() {
		t.Error("Empty VizType should be chart")
	}

	opts.VizType = "chart"
	if !opts.IsChart() {
		t.Error("chart VizType should be chart")
	}

	opts.VizType = "nodelink"
	if opts.IsChart() {
		t.Error("nodelink VizType should not be chart")
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty VizType should not be nodelink")
	}

	opts.VizType = "nodelink"
	if !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsSource(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{name: "file", opts: Options{Input: "trees.json"}, want: "trees.json"},
		{name: "url", opts: Options{URL: "https://example.com/t.json"}, want: "https://example.com/t.json"},
		{
			name: "mongo",
			opts: Options{MongoURI: "mongodb://localhost", MongoDatabase: "viz", MongoCollection: "trees"},
			want: "mongodb:viz/trees",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Source(); got != tt.want {
				t.Errorf("Source() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "trees.json"}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalWidth := opts.Width
	originalVizType := opts.VizType
	originalStyle := opts.Style

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if opts.Style != originalStyle {
		t.Error("Style changed on second call")
	}
}

func TestSetComposeDefaults(t *testing.T) {
	opts := Options{}
	opts.SetComposeDefaults()

	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
	if opts.Padding != DefaultPadding {
		t.Errorf("Padding should be %f, got %f", DefaultPadding, opts.Padding)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style should be %s, got %s", DefaultStyle, opts.Style)
	}
}

func TestOptionsValidateForComposeRejectsBadSortTrait(t *testing.T) {
	opts := Options{Input: "trees.json", SortTrait: "Not A Trait!"}
	if err := opts.ValidateForCompose(); err == nil {
		t.Error("Invalid sort trait name should fail")
	}
}

func TestOptionsFrame(t *testing.T) {
	opts := Options{Width: 1200, Height: 600}
	f := opts.Frame()
	if f.Width != 1200 || f.Height != 600 {
		t.Errorf("frame = %gx%g, want 1200x600", f.Width, f.Height)
	}
	// Margins always come from the default frame.
	if f.MarginLeft != 40 || f.MarginRight != 10 || f.MarginTop != 20 || f.MarginBottom != 30 {
		t.Errorf("margins = %g/%g/%g/%g, want 40/10/20/30",
			f.MarginLeft, f.MarginRight, f.MarginTop, f.MarginBottom)
	}
}
