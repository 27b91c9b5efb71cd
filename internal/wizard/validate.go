package wizard

import "github.com/panelctl/panelctl/internal/api"

// Dimension identifies one resource axis of a server allocation.
type Dimension int

const (
	DimMemory Dimension = iota
	DimDisk
	DimCPU
	DimDatabases
	DimAllocations
)

// String returns the dimension's display name.
func (d Dimension) String() string {
	switch d {
	case DimMemory:
		return "memory"
	case DimDisk:
		return "disk"
	case DimCPU:
		return "cpu"
	case DimDatabases:
		return "databases"
	case DimAllocations:
		return "allocations"
	}
	return "unknown"
}

// Bounds is the legal range for one resource dimension.
// Legal values are Min, Min+Step, Min+2*Step, ... capped at Max.
type Bounds struct {
	Min  int
	Max  int
	Step int
}

// BoundsFor returns the legal range for a dimension under the given quota.
//
// Memory and disk step in 512 MB / 1024 MB increments, CPU in 25-point
// increments. Databases and allocations are plain counts from zero up to
// the account maximum.
func BoundsFor(quota api.Quota, dim Dimension) Bounds {
	switch dim {
	case DimMemory:
		return Bounds{Min: 512, Max: quota.Memory, Step: 512}
	case DimDisk:
		return Bounds{Min: 1024, Max: quota.Disk, Step: 1024}
	case DimCPU:
		return Bounds{Min: 25, Max: quota.CPU, Step: 25}
	case DimDatabases:
		return Bounds{Min: 0, Max: quota.Databases, Step: 1}
	case DimAllocations:
		return Bounds{Min: 0, Max: quota.Allocations, Step: 1}
	}
	return Bounds{}
}

// Clamp pulls a candidate value into the legal range, rounding to the
// nearest step multiple. Values past either end snap to the nearest legal
// value, so the result is always a multiple of Step from Min even when
// Max itself is not.
func (b Bounds) Clamp(value int) int {
	step := b.Step
	if step < 1 {
		step = 1
	}

	if value > b.Max {
		value = b.Max
	}

	offset := value - b.Min
	if offset < 0 {
		offset = 0
	}

	value = b.Min + (offset+step/2)/step*step
	if value > b.Max {
		value -= step
	}

	if value < b.Min {
		value = b.Min
	}

	return value
}

// Values enumerates every legal value in the range, low to high.
// Used for count dimensions rendered as pick lists rather than sliders.
func (b Bounds) Values() []int {
	step := b.Step
	if step < 1 {
		step = 1
	}

	var values []int
	for v := b.Min; v <= b.Max; v += step {
		values = append(values, v)
	}

	return values
}

// CanCreate reports whether the account can provision a server at all.
// An account with no remaining slots, or a memory, disk, or CPU cap below
// the smallest provisionable unit, has nothing to provision with.
func CanCreate(quota api.Quota) bool {
	if quota.Slots == 0 {
		return false
	}

	for _, dim := range []Dimension{DimMemory, DimDisk, DimCPU} {
		b := BoundsFor(quota, dim)
		if b.Max < b.Min {
			return false
		}
	}

	return true
}
