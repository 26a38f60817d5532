package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DecodeEnvelope_ResultsWithCount_ShouldUseReportedCount(t *testing.T) {

	envelope := decodeEnvelope([]byte(`{"results": [{"id": 1}, {"id": 2}], "count": 42}`))

	assert.Len(t, envelope.Results, 2)
	assert.Equal(t, 42, envelope.Count)
}

func Test_DecodeEnvelope_ResultsWithoutCount_ShouldFallBackToLength(t *testing.T) {

	envelope := decodeEnvelope([]byte(`{"results": [{"id": 1}, {"id": 2}, {"id": 3}]}`))

	assert.Len(t, envelope.Results, 3)
	assert.Equal(t, 3, envelope.Count)
}

func Test_DecodeEnvelope_BareArray_ShouldBeAccepted(t *testing.T) {

	envelope := decodeEnvelope([]byte(`[{"id": 1}, {"id": 2}]`))

	assert.Len(t, envelope.Results, 2)
	assert.Equal(t, 2, envelope.Count)
}

func Test_DecodeEnvelope_DataWrapper_ShouldBeAccepted(t *testing.T) {

	envelope := decodeEnvelope([]byte(`{"data": [{"id": 1}]}`))

	assert.Len(t, envelope.Results, 1)
	assert.Equal(t, 1, envelope.Count)
}

func Test_DecodeEnvelope_UnknownShape_ShouldDegradeToEmpty(t *testing.T) {

	assert := assert.New(t)

	for _, body := range []string{`{}`, `{"items": [1]}`, `"just a string"`, `not json at all`, ``, `null`} {
		envelope := decodeEnvelope([]byte(body))
		assert.Empty(envelope.Results, "body: %v", body)
		assert.Zero(envelope.Count, "body: %v", body)
	}
}

func Test_DecodeEnvelope_EmptyResults_ShouldKeepCount(t *testing.T) {

	envelope := decodeEnvelope([]byte(`{"results": [], "count": 0}`))

	assert.Empty(t, envelope.Results)
	assert.Zero(t, envelope.Count)
}
