package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocumentListsListingRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]struct {
			Summary string `json:"summary"`
		} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for _, segment := range []string{"like", "user", "date", "aleatory", "userQuantity"} {
		path := "/v1/publication/" + segment + "/{pag}"
		op, ok := doc.Paths[path]["get"]
		if assert.True(t, ok, path) {
			assert.Equal(t, "List publications by sort order", op.Summary)
		}
	}
}
