package utils

import (
	"testing"

	"workshop-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jobCardGrid builds a grid shaped like the workshop template
func jobCardGrid(ops ...string) entity.Grid {
	g := make(entity.Grid, 12, 12+len(ops)+2)
	g[6] = []string{"Flap actuator"}
	g[8] = []string{"PN-4471", "", "", "", "", "", "SN-0098"}
	g[10] = []string{"Operation\nStart date"}
	for _, op := range ops {
		g = append(g, []string{op, "x"})
	}
	g = append(g, []string{"End date"}, []string{"AFTER_END"})
	return g
}

func TestExtract_HeaderFields(t *testing.T) {
	e := NewJobCardExtractor(DefaultJobCardLayout())
	out := e.Extract(jobCardGrid("10_COAT"))

	assert.Equal(t, "Flap actuator", out.Name)
	assert.Equal(t, "PN-4471", out.PartNumber)
	require.NotNil(t, out.SerialNumber)
	assert.Equal(t, "SN-0098", *out.SerialNumber)
}

func TestExtract_OperationsBetweenMarkers(t *testing.T) {
	e := NewJobCardExtractor(DefaultJobCardLayout())
	out := e.Extract(jobCardGrid("10_COAT", "20_MECH", "30\n_NDT"))

	assert.Equal(t, []string{"10_COAT", "20_MECH", "30_NDT", "PPK"}, out.Operations.Names())
	for name, rec := range out.Operations {
		assert.True(t, rec.IsEmpty(), "operation %s should start empty", name)
	}
	assert.NotContains(t, out.Operations, "AFTER_END")
	assert.NotContains(t, out.Operations, "End date")
}

func TestExtract_SentinelAlwaysPresent(t *testing.T) {
	e := NewJobCardExtractor(DefaultJobCardLayout())

	out := e.Extract(entity.Grid{})
	assert.Equal(t, "", out.Name)
	assert.Nil(t, out.SerialNumber)
	assert.Equal(t, entity.Operations{"PPK": {}}, out.Operations)

	// no end marker: everything after the start marker counts
	g := entity.Grid{{"Start date"}, {"10_COAT"}, {""}, {"20_OUT"}}
	out = e.Extract(g)
	assert.Equal(t, []string{"10_COAT", "20_OUT", "PPK"}, out.Operations.Names())
}

func TestExtract_NoStartMarker(t *testing.T) {
	e := NewJobCardExtractor(DefaultJobCardLayout())
	g := entity.Grid{{"10_COAT"}, {"End date"}}

	out := e.Extract(g)
	assert.Equal(t, []string{"PPK"}, out.Operations.Names())
}
