package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/vfs/fs/core"
)

func TestFSType_String(t *testing.T) {
	tests := []struct {
		name     string
		fsType   core.FSType
		expected string
	}{
		{"Unknown", core.FSTypeUnknown, "unknown"},
		{"Local", core.FSTypeLocal, "local"},
		{"Memory", core.FSTypeMemory, "mock"},
		{"ObjectStore", core.FSTypeObjectStore, "s3"},
		{"Distributed", core.FSTypeDistributed, "hdfs"},
		{"SubTree", core.FSTypeSubTree, "subtree"},
		{"Slow", core.FSTypeSlow, "slow"},
		{"Invalid", core.FSType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fsType.String())
		})
	}
}

func TestFSType_Constants(t *testing.T) {
	assert.Equal(t, core.FSType(0), core.FSTypeUnknown)

	types := []core.FSType{
		core.FSTypeLocal,
		core.FSTypeMemory,
		core.FSTypeObjectStore,
		core.FSTypeDistributed,
		core.FSTypeSubTree,
		core.FSTypeSlow,
	}

	seen := make(map[core.FSType]bool)
	for _, fsType := range types {
		assert.NotZero(t, fsType, "FSType %s has zero value", fsType)
		assert.False(t, seen[fsType], "duplicate FSType value %d", fsType)
		seen[fsType] = true
	}
}
