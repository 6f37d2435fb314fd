package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wibodev-id/enterprise-retail-pos-system/internal/application/catalog"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"JALAPEÑO", "jalapeno"},
		{"Crème Brûlée", "creme brulee"},
		{"plain ascii", "plain ascii"},
		{"MiXeD Case", "mixed case"},
		{"", ""},
		{"123-ABC", "123-abc"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, catalog.Fold(tc.in), "Fold(%q)", tc.in)
	}
}

func TestFold_Idempotent(t *testing.T) {
	once := catalog.Fold("Señorita Café")
	assert.Equal(t, once, catalog.Fold(once))
}
