// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, r AppRecord) string {
	t.Helper()
	data, err := r.MarshalJSON()
	require.NoError(t, err)
	return string(data)
}

func TestAppRecordZeroValue(t *testing.T) {
	var r AppRecord
	assert.True(t, r.IsEmpty())
	assert.False(t, r.HasCustomFields())
	assert.Equal(t, "{}", marshal(t, r))
}

func TestAppRecordOrder(t *testing.T) {
	var r AppRecord
	r.SetCustom("zeta", "1")
	r.Set("name", "Acme")
	r.SetCustom("alpha", "2")
	r.Set("total_users", int64(10))
	r.Set("name", "Acme Corp")
	r.SetCustom("zeta", "3")

	assert.Equal(t, []string{"name", "total_users"}, r.Attributes())
	assert.Equal(t,
		`{"name":"Acme Corp","total_users":10,"custom_fields":{"zeta":"3","alpha":"2"}}`,
		marshal(t, r))
}

func TestAppRecordOnlyCustomFields(t *testing.T) {
	var r AppRecord
	r.SetCustom("team", "core")
	assert.False(t, r.IsEmpty())
	assert.Equal(t, `{"custom_fields":{"team":"core"}}`, marshal(t, r))
}

func TestAppRecordCustomFieldsIsACopy(t *testing.T) {
	var r AppRecord
	r.SetCustom("team", "core")
	cf := r.CustomFields()
	cf["team"] = "changed"
	assert.Equal(t, map[string]string{"team": "core"}, r.CustomFields())
}

func TestDocumentCustomFieldRows(t *testing.T) {
	doc := NewDocument()
	assert.Equal(t, 0, doc.CustomFieldRows())

	var plain, custom AppRecord
	plain.Set("name", "a")
	custom.SetCustom("x", "y")
	doc.Apps = append(doc.Apps, plain, custom, AppRecord{})
	assert.Equal(t, 1, doc.CustomFieldRows())
}
