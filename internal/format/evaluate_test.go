package format

import (
	"testing"

	"github.com/tunesort/tunesort/internal/model"
)

func evalTemplate(template string, song *model.Song) (string, bool) {
	e := &evaluator{song: song, opts: Options{}}
	text := e.run(template)
	return text, e.unique
}

func TestEvaluate_LiteralOnly(t *testing.T) {
	song := &model.Song{Title: "T"}

	tests := []string{
		"plain text",
		"with (punctuation) and - dashes",
		"",
	}

	for _, template := range tests {
		t.Run(template, func(t *testing.T) {
			got, unique := evalTemplate(template, song)
			if got != template {
				t.Errorf("evaluate(%q) = %q, want unchanged", template, got)
			}
			if unique {
				t.Error("literal-only template must not set the unique flag")
			}
		})
	}
}

func TestEvaluate_Placeholders(t *testing.T) {
	song := &model.Song{
		Title:  "Song",
		Artist: "Band",
		Album:  "Record",
		Track:  7,
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"single tag", "%title", "Song"},
		{"several tags", "%artist - %title", "Band - Song"},
		{"track is padded", "%track %title", "07 Song"},
		{"unknown tag vanishes", "%artist%bogus%title", "BandSong"},
		{"bare percent vanishes", "100% %title", "100 Song"},
		{"adjacent literals kept", "[%artist] %title", "[Band] Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalTemplate(tt.template, song)
			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluate_SectionCollapse(t *testing.T) {
	song := &model.Song{
		Title:  "T",
		Artist: "A",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		// No stray separator may survive a collapsed section.
		{"empty field collapses section", "%artist - {%composer - }%title", "A - T"},
		{"satisfied section stays", "%artist - {%title - }end", "A - T - end"},
		{"literal-only section stays", "{literal}", "literal"},
		{"unknown tag collapses section", "{%bogus - }%title", "T"},
		{"stray percent collapses section", "{% - }%title", "T"},
		{"two sections independent", "{%artist }{%composer }%title", "A T"},
		// A section needs content; bare braces are literal text.
		{"empty braces stay literal", "x{}y %title", "x{}y T"},
		{"empty braces inside section", "{%artist {}}", "A {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalTemplate(tt.template, song)
			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

// A collapsed inner section never collapses its parent: the parent's fate
// depends only on the parent's own placeholders.
func TestEvaluate_NestedSections(t *testing.T) {
	tests := []struct {
		name     string
		template string
		song     *model.Song
		want     string
	}{
		{
			"inner collapses, outer survives",
			"{%album ({%year})}",
			&model.Song{Album: "X", Year: 0},
			"X ()",
		},
		{
			"inner survives inside outer",
			"{%album ({%year})}",
			&model.Song{Album: "X", Year: 1999},
			"X (1999)",
		},
		{
			"outer collapses on its own placeholder",
			"{%album ({%year})}",
			&model.Song{Year: 1999},
			"",
		},
		{
			"section with only a nested section survives",
			"{({%year})}",
			&model.Song{Year: 0},
			"()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := evalTemplate(tt.template, tt.song)
			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluate_UnbalancedBracesStayLiteral(t *testing.T) {
	song := &model.Song{Title: "T", Artist: "A"}

	tests := []struct {
		template string
		want     string
	}{
		{"{%title", "{T"},
		{"%title}", "T}"},
		{"}%title{", "}T{"},
		{"{%artist {%title}", "{A T"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, _ := evalTemplate(tt.template, song)
			if got != tt.want {
				t.Errorf("evaluate(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestEvaluate_UniqueFlag(t *testing.T) {
	tests := []struct {
		name     string
		template string
		song     *model.Song
		want     bool
	}{
		{"title sets it", "%title", &model.Song{Title: "T"}, true},
		{"track sets it", "%track", &model.Song{Track: 3}, true},
		{"artist does not", "%artist", &model.Song{Artist: "A"}, false},
		{"empty title does not", "%title", &model.Song{}, false},
		// The flag survives even when the enclosing section collapses.
		{"set inside collapsed section", "{%track %composer}", &model.Song{Track: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, unique := evalTemplate(tt.template, tt.song)
			if unique != tt.want {
				t.Errorf("evaluate(%q) unique = %v, want %v", tt.template, unique, tt.want)
			}
		})
	}
}

func TestEvaluate_SubstitutedValuesAreOpaque(t *testing.T) {
	// Braces and percent signs inside tag values must not be re-expanded.
	song := &model.Song{Title: "100% {pure}", Artist: "A"}
	got, _ := evalTemplate("%artist - %title", song)
	want := "A - 100% {pure}"
	if got != want {
		t.Errorf("evaluate() = %q, want %q", got, want)
	}
}
