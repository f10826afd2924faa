// Copyright (c) 2026 UILove. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uilove/uilove/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline against typical
website and category titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Landing Pages", "landing-pages"},
		{"accents", "Café Résumé", "cafe-resume"},
		{"punctuation", "SaaS & E-Commerce!", "saas-e-commerce"},
		{"multiple_spaces", "Dark   Mode", "dark-mode"},
		{"leading_trailing", "  Portfolio  ", "portfolio"},
		{"digits", "Web 3.0 Tools", "web-3-0-tools"},
		{"already_slug", "design-systems", "design-systems"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
