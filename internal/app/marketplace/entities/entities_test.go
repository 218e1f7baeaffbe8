package entities

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/dealmarket-service/internal/pkg/schema"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestVariantFields(t *testing.T) {
	tests := []struct {
		schema *schema.Schema
		fields []string
	}{
		{UserSchema, []string{"id", "username", "email", "password", "join_date"}},
		{UserInSchema, []string{"username", "email", "password"}},
		{UserOutSchema, []string{"id", "username", "email", "is_verified", "join_date"}},
		{BusinessSchema, []string{"id", "business_name", "city", "region", "business_description", "logo", "owner_id"}},
		{BusinessInSchema, []string{"business_name", "city", "region", "business_description", "logo", "owner_id"}},
		{ProductSchema, []string{
			"id", "name", "main_category", "category", "original_price", "new_price", "percentage_discount",
			"offer_expiration_date", "product_image", "date_published", "business_id",
		}},
		{ProductInSchema, []string{
			"name", "category", "original_price", "new_price", "offer_expiration_date", "product_image", "business_id",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.schema.Name(), func(t *testing.T) {
			assert.Equal(t, tt.fields, tt.schema.FieldNames())
		})
	}
}

func TestVariantInvariants(t *testing.T) {
	for _, s := range Variants() {
		name := s.Name()
		if strings.HasSuffix(name, "Out") {
			assert.False(t, s.Has("password"), name)
		}
		if strings.HasSuffix(name, "In") {
			for _, f := range []string{"id", "join_date", "date_published", "percentage_discount"} {
				assert.False(t, s.Has(f), "%s must not accept %s", name, f)
			}
		}
	}
}

func TestVariantsKeepEntityConstraints(t *testing.T) {
	for _, s := range Variants() {
		for _, f := range s.Fields() {
			original, ok := s.Entity().Field(f.Name)
			require.True(t, ok)
			assert.Equal(t, original, f, "%s.%s", s.Name(), f.Name)
		}
	}
}

func TestVariantLookup(t *testing.T) {
	assert.Len(t, Variants(), 7)
	assert.Equal(t, []string{"Business", "BusinessIn", "Product", "ProductIn", "User", "UserIn", "UserOut"}, VariantNames())

	s, err := Variant("UserOut")
	require.NoError(t, err)
	assert.Same(t, UserOutSchema, s)

	_, err = Variant("UserPassword")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestEntities(t *testing.T) {
	names := make([]string, 0, 3)
	for _, e := range Entities() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{User, Business, Product}, names)

	owner, ok := BusinessEntity.Field("owner_id")
	require.True(t, ok)
	assert.Equal(t, User, owner.References)

	category, ok := ProductEntity.Field("category")
	require.True(t, ok)
	assert.Len(t, category.Enum, 35)
}

func TestUserInSchema_Validate(t *testing.T) {
	t.Run("registration payload", func(t *testing.T) {
		err := UserInSchema.Validate(decode(t, `{"username":"alice","email":"a@x.com","password":"secret"}`))
		assert.NoError(t, err)
	})

	t.Run("twenty characters accepted", func(t *testing.T) {
		err := UserInSchema.Validate(decode(t,
			`{"username":"`+strings.Repeat("a", 20)+`","email":"a@x.com","password":"secret"}`))
		assert.NoError(t, err)
	})

	t.Run("twenty-one characters rejected", func(t *testing.T) {
		err := UserInSchema.Validate(decode(t,
			`{"username":"`+strings.Repeat("a", 21)+`","email":"a@x.com","password":"secret"}`))
		assert.ErrorIs(t, err, schema.ErrTooLong)
	})

	t.Run("server fields rejected", func(t *testing.T) {
		err := UserInSchema.Validate(decode(t,
			`{"username":"alice","email":"a@x.com","password":"secret","is_verified":false}`))
		assert.ErrorIs(t, err, schema.ErrUnknownField)
	})
}

func TestProductInSchema_Validate(t *testing.T) {
	base := `"name":"Car","original_price":"1000.00","new_price":"1200.00","business_id":1`

	t.Run("category in set accepted", func(t *testing.T) {
		err := ProductInSchema.Validate(decode(t, `{`+base+`,"category":"Cars"}`))
		assert.NoError(t, err)
	})

	t.Run("category outside set rejected", func(t *testing.T) {
		err := ProductInSchema.Validate(decode(t, `{`+base+`,"category":"Toys"}`))
		assert.ErrorIs(t, err, schema.ErrNotAllowed)
	})

	t.Run("computed discount rejected", func(t *testing.T) {
		err := ProductInSchema.Validate(decode(t, `{`+base+`,"category":"Cars","percentage_discount":10}`))
		assert.ErrorIs(t, err, schema.ErrUnknownField)
	})

	t.Run("price precision", func(t *testing.T) {
		err := ProductInSchema.Validate(decode(t,
			`{"name":"Car","category":"Cars","original_price":10.005,"new_price":1,"business_id":1}`))
		assert.ErrorIs(t, err, schema.ErrPrecision)
	})
}
