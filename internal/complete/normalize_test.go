package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name         string
		defaults     []string
		candidates   []string
		wantList     []string
		wantDefaults []string
	}{
		{
			name:         "sequence moves to front in order",
			defaults:     []string{"d1", "d2"},
			candidates:   []string{"a", "d2", "b"},
			wantList:     []string{"d1", "d2", "a", "b"},
			wantDefaults: []string{"d1"},
		},
		{
			name:         "sequence entries absent from candidates still lead",
			defaults:     []string{"x", "y"},
			candidates:   []string{"a", "b"},
			wantList:     []string{"x", "y", "a", "b"},
			wantDefaults: []string{"x"},
		},
		{
			name:         "remainder keeps relative order",
			defaults:     []string{"c", "a"},
			candidates:   []string{"a", "b", "c", "d"},
			wantList:     []string{"c", "a", "b", "d"},
			wantDefaults: []string{"c"},
		},
		{
			name:         "single default untouched",
			defaults:     []string{"d"},
			candidates:   []string{"a", "d"},
			wantList:     []string{"a", "d"},
			wantDefaults: []string{"d"},
		},
		{
			name:         "no defaults untouched",
			defaults:     nil,
			candidates:   []string{"a", "b"},
			wantList:     []string{"a", "b"},
			wantDefaults: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Defaults: tt.defaults}
			got := normalizeDefaults(req, tt.candidates)
			assert.Equal(t, tt.wantList, got)
			assert.Equal(t, tt.wantDefaults, req.Defaults)
		})
	}
}

func TestLiftDefault(t *testing.T) {
	t.Run("default moves to front and clears when initial text set", func(t *testing.T) {
		req := &Request{
			Defaults: []string{"d"},
			Initial:  Initial{Text: "abc"},
		}
		got := liftDefault(req, []string{"a", "d", "b"})
		assert.Equal(t, []string{"d", "a", "b"}, got)
		assert.Empty(t, req.Defaults)
		assert.Equal(t, "abc", req.Initial.Text)
	})

	t.Run("no initial text leaves request alone", func(t *testing.T) {
		req := &Request{Defaults: []string{"d"}}
		got := liftDefault(req, []string{"a", "d", "b"})
		assert.Equal(t, []string{"a", "d", "b"}, got)
		assert.Equal(t, []string{"d"}, req.Defaults)
	})

	t.Run("no default leaves request alone", func(t *testing.T) {
		req := &Request{Initial: Initial{Text: "abc"}}
		got := liftDefault(req, []string{"a", "b"})
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("default absent from candidates is still prepended", func(t *testing.T) {
		req := &Request{
			Defaults: []string{"z"},
			Initial:  Initial{Text: "q"},
		}
		got := liftDefault(req, []string{"a", "b"})
		assert.Equal(t, []string{"z", "a", "b"}, got)
	})
}
