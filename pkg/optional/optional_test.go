package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Title  Value[string]  `json:"title"`
	Rating Value[float64] `json:"rating"`
}

func TestValue_Presence(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		titleSet  bool
		titleNull bool
		title     string
		ratingSet bool
	}{
		{"键缺失", `{}`, false, false, "", false},
		{"显式null", `{"title":null}`, true, true, "", false},
		{"空字符串", `{"title":""}`, true, false, "", false},
		{"正常值", `{"title":"T1","rating":0}`, true, false, "T1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.titleSet, p.Title.Set)
			assert.Equal(t, tt.titleNull, p.Title.Null)
			assert.Equal(t, tt.title, p.Title.V)
			assert.Equal(t, tt.ratingSet, p.Rating.Set)
		})
	}
}

func TestValue_TypeMismatch(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"rating":"five"}`), &p)
	assert.Error(t, err)
}

func TestValue_Helpers(t *testing.T) {
	v := Of("Guest")
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "Guest", got)

	var empty Value[string]
	assert.Equal(t, "Guest", empty.OrElse("Guest"))

	out, err := json.Marshal(patch{Title: Of("T1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"T1","rating":null}`, string(out))
}
