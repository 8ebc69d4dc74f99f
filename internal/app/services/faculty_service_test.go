package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{";;", nil},
		{"Networks", []string{"Networks"}},
		{"Networks; Databases;Compilers", []string{"Networks", "Databases", "Compilers"}},
		{" Embedded Systems ; ", []string{"Embedded Systems"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, splitList(c.raw), "input %q", c.raw)
	}
}
