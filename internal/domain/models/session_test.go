package models_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

func TestRecordShown(t *testing.T) {
	var c models.SessionContext

	c.RecordShown([]string{"a", "b"}, false)
	c.RecordShown([]string{"c"}, true)
	assert.Equal(t, []string{"a", "b", "c"}, c.ShownHandles)

	c.RecordShown([]string{"d"}, false)
	assert.Equal(t, []string{"d"}, c.ShownHandles)
}

func TestRecordShown_KeepsNewestWithinBound(t *testing.T) {
	var c models.SessionContext
	handles := make([]string, models.MaxShownHandles+5)
	for i := range handles {
		handles[i] = fmt.Sprintf("h-%d", i)
	}

	c.RecordShown(handles, false)

	assert.Len(t, c.ShownHandles, models.MaxShownHandles)
	assert.Equal(t, "h-5", c.ShownHandles[0])
	assert.Equal(t, handles[len(handles)-1], c.ShownHandles[len(c.ShownHandles)-1])
}
