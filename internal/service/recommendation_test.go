package service

import "testing"

func TestCatalogTemplate(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		wantIdx int
	}{
		{"low score picks first entry", 0.1, 0},
		{"quarter boundary", 0.25, 1},
		{"mid score", 0.6, 2},
		{"strong match picks last entry", 0.75, 3},
		{"perfect score clamps", 1.0, 3},
		{"negative score clamps", -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalogTemplateFor(tt.score)
			want := recommendationCatalog[tt.wantIdx]
			if got.Title != want.Title {
				t.Errorf("catalogTemplateFor(%v) = %q, want %q", tt.score, got.Title, want.Title)
			}
		})
	}
}

func TestCatalogTemplatesComplete(t *testing.T) {
	for i, tpl := range recommendationCatalog {
		if tpl.Title == "" || tpl.Description == "" || tpl.Category == "" {
			t.Errorf("catalog entry %d has empty fields", i)
		}
	}
}
