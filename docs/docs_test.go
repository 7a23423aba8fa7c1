package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/rapidxcel-logistics/docs"
)

func TestReadDoc_EsJSONConRutasDeAuth(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Paths map[string]any        `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "RapidXcel Identity API", doc.Info.Title)
	for _, p := range []string{"/auth/register", "/auth/login", "/auth/logout", "/auth/profile", "/inventory/stocks"} {
		assert.Contains(t, doc.Paths, p)
	}
}
