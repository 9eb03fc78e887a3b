package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 1, DefaultLimit, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"normal", 3, 10, 3, 10, 20},
		{"limit capped", 1, 500, 1, MaxLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Clamp(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func TestPages(t *testing.T) {
	p := Clamp(1, 10)
	assert.Equal(t, 1, p.Pages(0))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, 3, p.Pages(25))
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Window(items, Clamp(1, 2)))
	assert.Equal(t, []int{5}, Window(items, Clamp(3, 2)))
	assert.Nil(t, Window(items, Clamp(4, 2)))
	assert.Nil(t, Window([]int(nil), Clamp(1, 2)))
}
