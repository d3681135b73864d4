package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLookupBasic(t *testing.T) {
	k, ok := LookupBasic("DateTimeOffset")
	require.True(t, ok)
	assert.Equal(t, DateTimeOffset, k)

	_, ok = LookupBasic("datetime")
	assert.False(t, ok)

	for _, kind := range BasicKinds() {
		got, ok := LookupBasic(kind.String())
		assert.True(t, ok, kind.String())
		assert.Equal(t, kind, got)
	}
}

func TestLookupCollection(t *testing.T) {
	k, ok := LookupCollection("ICollection")
	require.True(t, ok)
	assert.Equal(t, ICollection, k)
	assert.False(t, k.Keyed())
	assert.True(t, Hashtable.Keyed())

	_, ok = LookupCollection("HashSet")
	assert.False(t, ok)
}

func TestTypeString(t *testing.T) {
	typ := CollectionType{
		Collection: List,
		Inner:      CollectionType{Collection: Dictionary, Inner: UserDefinedType{Name: "Rate"}},
	}
	assert.Equal(t, "List<Dictionary<Rate>>", typ.String())
	assert.Equal(t, "List<int?>", CollectionType{Collection: List, Inner: Basic(Int), InnerNullable: true}.String())

	prop := Property{Name: "Born", Type: Basic(DateTime), Nullable: true}
	assert.Equal(t, "DateTime?", prop.TypeString())
}

func TestIdentityProperty(t *testing.T) {
	_, ok := ParsedClass{Name: "Empty"}.IdentityProperty()
	assert.False(t, ok)

	c := ParsedClass{Name: "Student", Properties: []Property{
		{Name: "StudentID", Type: Basic(Int)},
		{Name: "StudentName", Type: Basic(StringKeyword)},
	}}
	id, ok := c.IdentityProperty()
	require.True(t, ok)
	assert.Equal(t, "StudentID", id.Name)
}

func TestUserDefinedNames(t *testing.T) {
	c := ParsedClass{Name: "Order", Properties: []Property{
		{Name: "Customer", Type: UserDefinedType{Name: "Customer"}},
		{Name: "Lines", Type: CollectionType{Collection: List, Inner: UserDefinedType{Name: "OrderLine"}}},
		{Name: "Billing", Type: UserDefinedType{Name: "Customer"}},
		{Name: "Raw", Type: UserDefinedType{Name: "Dictionary<int,string>"}},
		{Name: "Total", Type: Basic(Decimal)},
	}}
	assert.Equal(t, []string{"Customer", "OrderLine"}, c.UserDefinedNames())
}

func TestPropertyJSON(t *testing.T) {
	prop := Property{
		Name: "Tags",
		Type: CollectionType{Collection: List, Inner: Basic(StringKeyword)},
	}
	data, err := json.Marshal(prop)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Tags",
		"nullable": false,
		"type": {"kind": "collection", "collection": "List", "inner": {"kind": "basic", "name": "string"}}
	}`, string(data))
}

func TestPropertyYAML(t *testing.T) {
	data, err := yaml.Marshal(Property{Name: "Owner", Type: UserDefinedType{Name: "Person"}, Nullable: true})
	require.NoError(t, err)
	assert.YAMLEq(t, "name: Owner\ntype:\n  kind: user\n  name: Person\nnullable: true\n", string(data))
}
