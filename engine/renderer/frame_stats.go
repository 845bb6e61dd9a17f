package renderer

import "time"

// FrameStats counts what one Render call did.
type FrameStats struct {
	Frame         uint64        `json:"frame" yaml:"frame"`
	DepthDraws    int           `json:"depth_draws" yaml:"depth_draws"`
	ColorDraws    int           `json:"color_draws" yaml:"color_draws"`
	SkippedNodes  int           `json:"skipped_nodes" yaml:"skipped_nodes"`
	ProgramBinds  int           `json:"program_binds" yaml:"program_binds"`
	GeometryBinds int           `json:"geometry_binds" yaml:"geometry_binds"`
	SkippedBinds  int           `json:"skipped_binds" yaml:"skipped_binds"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
}

// Draws returns the total number of draws over both passes.
func (s FrameStats) Draws() int {
	return s.DepthDraws + s.ColorDraws
}
