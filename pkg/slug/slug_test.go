// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/condominio/condoadmin/pkg/slug"
)

/*
TestFrom covers accent folding, separator collapsing and truncation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents", "Corte de agua: sábado 9:00", "corte-de-agua-sabado-9-00"},
		{"enye", "Mañana junta de vecinos", "manana-junta-de-vecinos"},
		{"edges", "  ¡Aviso!  ", "aviso"},
		{"only_symbols", "¿¿??", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}

	long := slug.From(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(long), slug.MaxLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}
