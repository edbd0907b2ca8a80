package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTodoItemJSONKeys(t *testing.T) {
	data, err := json.Marshal(TodoItem{Title: "Write report", Completed: true})
	require.NoError(t, err)
	require.JSONEq(t, `{"title":"Write report","completed":true}`, string(data))

	var item TodoItem
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Review PR","completed":false}`), &item))
	require.Equal(t, "Review PR", item.Title)
	require.False(t, item.Completed)
}
