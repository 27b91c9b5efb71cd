package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/panelctl/panelctl/internal/api"
)

func TestBoundsFor_Memory(t *testing.T) {
	quota := api.Quota{Memory: 4096}

	b := BoundsFor(quota, DimMemory)

	assert.Equal(t, 512, b.Min)
	assert.Equal(t, 4096, b.Max)
	assert.Equal(t, 512, b.Step)
}

func TestBoundsFor_Counts(t *testing.T) {
	quota := api.Quota{Databases: 2, Allocations: 5}

	db := BoundsFor(quota, DimDatabases)
	assert.Equal(t, 0, db.Min)
	assert.Equal(t, 2, db.Max)
	assert.Equal(t, 1, db.Step)

	alloc := BoundsFor(quota, DimAllocations)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, alloc.Values())
}

func TestClamp_RoundsToNearestStep(t *testing.T) {
	b := Bounds{Min: 512, Max: 4096, Step: 512}

	assert.Equal(t, 1024, b.Clamp(1100))
	assert.Equal(t, 1536, b.Clamp(1400))
	assert.Equal(t, 1536, b.Clamp(1536))
}

func TestClamp_PullsOutOfRangeToBounds(t *testing.T) {
	b := Bounds{Min: 512, Max: 4096, Step: 512}

	assert.Equal(t, 512, b.Clamp(0))
	assert.Equal(t, 512, b.Clamp(-100))
	assert.Equal(t, 4096, b.Clamp(999999))
}

func TestClamp_RaggedMaxStaysOnStep(t *testing.T) {
	// A cap that is not itself a step multiple: legal top is 1536.
	b := Bounds{Min: 512, Max: 2000, Step: 512}

	got := b.Clamp(5000)
	assert.Equal(t, 1536, got)
}

func TestClamp_AlwaysLegal(t *testing.T) {
	quotas := []api.Quota{
		{Memory: 2048, Disk: 10240, CPU: 100},
		{Memory: 512, Disk: 1024, CPU: 25},
		{Memory: 3000, Disk: 9999, CPU: 130},
		{Memory: 16384, Disk: 512000, CPU: 800},
		{Memory: 256, Disk: 500, CPU: 10},
		{Memory: 511, Disk: 1023, CPU: 24},
	}
	dims := []Dimension{DimMemory, DimDisk, DimCPU}
	candidates := []int{-512, 0, 1, 511, 512, 513, 1000, 1024, 2047, 5000, 1 << 20}

	for _, q := range quotas {
		for _, d := range dims {
			b := BoundsFor(q, d)
			if b.Max < b.Min {
				// The range is empty; such quotas must fail CanCreate
				// instead of reaching Clamp.
				q.Slots = 1
				assert.False(t, CanCreate(q), "quota %+v dim %s", q, d)
				continue
			}
			for _, v := range candidates {
				got := b.Clamp(v)

				assert.GreaterOrEqual(t, got, b.Min, "quota %+v dim %s value %d", q, d, v)
				assert.LessOrEqual(t, got, b.Max, "quota %+v dim %s value %d", q, d, v)
				assert.Zero(t, (got-b.Min)%b.Step, "quota %+v dim %s value %d: %d off step", q, d, v, got)
			}
		}
	}
}

func TestCanCreate(t *testing.T) {
	ok := api.Quota{Slots: 1, Memory: 2048, Disk: 10240, CPU: 100}
	assert.True(t, CanCreate(ok))

	noSlots := ok
	noSlots.Slots = 0
	assert.False(t, CanCreate(noSlots))

	noMemory := ok
	noMemory.Memory = 0
	assert.False(t, CanCreate(noMemory))

	noDisk := ok
	noDisk.Disk = 0
	assert.False(t, CanCreate(noDisk))

	noCPU := ok
	noCPU.CPU = 0
	assert.False(t, CanCreate(noCPU))

	// Caps below the smallest provisionable unit are as good as zero.
	tinyMemory := ok
	tinyMemory.Memory = 256
	assert.False(t, CanCreate(tinyMemory))

	tinyDisk := ok
	tinyDisk.Disk = 1023
	assert.False(t, CanCreate(tinyDisk))

	tinyCPU := ok
	tinyCPU.CPU = 24
	assert.False(t, CanCreate(tinyCPU))

	// Zero databases or allocations alone do not forbid creation.
	noExtras := ok
	noExtras.Databases = 0
	noExtras.Allocations = 0
	assert.True(t, CanCreate(noExtras))
}
