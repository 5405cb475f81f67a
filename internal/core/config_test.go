package core

import "testing"

func TestFitGrid(t *testing.T) {
	tests := []struct {
		name         string
		cfg          RuntimeConfig
		chrome       int
		wantW, wantH int
	}{
		{"fits", RuntimeConfig{GridW: 20, GridH: 10, ScreenW: 80, ScreenH: 24}, 2, 20, 10},
		{"too wide", RuntimeConfig{GridW: 100, GridH: 10, ScreenW: 80, ScreenH: 24}, 2, 78, 10},
		{"too tall", RuntimeConfig{GridW: 20, GridH: 50, ScreenW: 80, ScreenH: 24}, 2, 20, 20},
		{"tiny screen", RuntimeConfig{GridW: 20, GridH: 20, ScreenW: 1, ScreenH: 1}, 2, 1, 1},
		{"unknown screen", RuntimeConfig{GridW: 50, GridH: 50}, 2, 50, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.cfg.FitGrid(tc.chrome)
			if got.GridW != tc.wantW || got.GridH != tc.wantH {
				t.Errorf("FitGrid() = %dx%d, expected %dx%d", got.GridW, got.GridH, tc.wantW, tc.wantH)
			}
		})
	}
}
