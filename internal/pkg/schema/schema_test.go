package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func testEntity(t *testing.T) *Entity {
	t.Helper()

	e, err := NewEntity("Account", "accounts",
		ID("id"),
		Char("handle", 5).AsUnique(),
		Char("secret", 10),
		Bool("active").WithDefault("true"),
		Text("bio").AsNullable(),
		Decimal("balance", 6, 2),
		Enum("tier", 10, "free", "pro"),
		Date("renews_on").WithDefault("today"),
		Timestamp("created_at").WithDefault("now").AsReadOnly(),
		ForeignKey("team_id", "Team"),
	)
	require.NoError(t, err)
	return e
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestNewEntity(t *testing.T) {
	t.Run("rejects duplicate field", func(t *testing.T) {
		_, err := NewEntity("X", "x", Int("a"), Int("a"))
		assert.Error(t, err)
	})

	t.Run("rejects enum without values", func(t *testing.T) {
		_, err := NewEntity("X", "x", Enum("e", 5))
		assert.Error(t, err)
	})

	t.Run("rejects enum value longer than column", func(t *testing.T) {
		_, err := NewEntity("X", "x", Enum("e", 3, "long"))
		assert.Error(t, err)
	})

	t.Run("rejects bad decimal precision", func(t *testing.T) {
		_, err := NewEntity("X", "x", Decimal("d", 2, 3))
		assert.Error(t, err)
	})

	t.Run("rejects reference without target", func(t *testing.T) {
		_, err := NewEntity("X", "x", ForeignKey("ref", ""))
		assert.Error(t, err)
	})

	t.Run("fields are copies", func(t *testing.T) {
		e := testEntity(t)
		fields := e.Fields()
		fields[6].Enum[0] = "mutated"

		tier, ok := e.Field("tier")
		require.True(t, ok)
		assert.Equal(t, []string{"free", "pro"}, tier.Enum)
	})
}

func TestDerive(t *testing.T) {
	e := testEntity(t)

	t.Run("exclude removes named fields and keeps order", func(t *testing.T) {
		s, err := Derive(e, "AccountOut", Exclude("secret"))
		require.NoError(t, err)
		assert.Equal(t, "AccountOut", s.Name())
		assert.Equal(t,
			[]string{"id", "handle", "active", "bio", "balance", "tier", "renews_on", "created_at", "team_id"},
			s.FieldNames())
		assert.False(t, s.Has("secret"))
	})

	t.Run("no options keeps every field", func(t *testing.T) {
		s, err := Derive(e, "Account")
		require.NoError(t, err)
		assert.Equal(t, e.FieldNames(), s.FieldNames())
	})

	t.Run("input drops read-only fields", func(t *testing.T) {
		s, err := DeriveInput(e, "AccountIn", Exclude("active"))
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"handle", "secret", "bio", "balance", "tier", "renews_on", "team_id"},
			s.FieldNames())
	})

	t.Run("included fields are not retyped", func(t *testing.T) {
		s := MustDerive(e, "AccountOut", Exclude("secret"))
		for _, f := range s.Fields() {
			orig, ok := e.Field(f.Name)
			require.True(t, ok)
			assert.Equal(t, orig, f)
		}
	})

	t.Run("unknown exclusion is an error", func(t *testing.T) {
		_, err := Derive(e, "Broken", Exclude("nope"))
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("excluding everything is an error", func(t *testing.T) {
		_, err := Derive(e, "Empty", Exclude(e.FieldNames()...))
		assert.Error(t, err)
	})

	t.Run("derivation is idempotent", func(t *testing.T) {
		a := MustDeriveInput(e, "AccountIn")
		b := MustDeriveInput(e, "AccountIn")
		assert.Equal(t, a.Fields(), b.Fields())
	})

	t.Run("must derive panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustDerive(e, "Broken", Exclude("nope")) })
	})
}

func TestSchema_Validate(t *testing.T) {
	in := MustDeriveInput(testEntity(t), "AccountIn")

	t.Run("valid payload", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"abcde","secret":"s","balance":"9999.99","tier":"pro","team_id":7}`))
		assert.NoError(t, err)
	})

	t.Run("length boundary counts characters", func(t *testing.T) {
		assert.NoError(t, in.Validate(decode(t, `{"handle":"ééééé","secret":"s","balance":1,"tier":"free","team_id":1}`)))

		err := in.Validate(decode(t, `{"handle":"abcdef","secret":"s","balance":1,"tier":"free","team_id":1}`))
		assert.ErrorIs(t, err, ErrTooLong)
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		err := in.Validate(decode(t, `{}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)

		fields := make([]string, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			assert.ErrorIs(t, fe, ErrMissingField)
			fields = append(fields, fe.Field)
		}
		assert.Equal(t, []string{"handle", "secret", "balance", "tier", "team_id"}, fields)
	})

	t.Run("enum mismatch", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"a","secret":"s","balance":1,"tier":"gold","team_id":1}`))
		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("decimal precision", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"a","secret":"s","balance":"1.234","tier":"free","team_id":1}`))
		assert.ErrorIs(t, err, ErrPrecision)

		err = in.Validate(decode(t, `{"handle":"a","secret":"s","balance":10000,"tier":"free","team_id":1}`))
		assert.ErrorIs(t, err, ErrPrecision)

		err = in.Validate(decode(t, `{"handle":"a","secret":"s","balance":"1.50","tier":"free","team_id":1}`))
		assert.NoError(t, err)
	})

	t.Run("huge exponents are rejected without expansion", func(t *testing.T) {
		for _, n := range []string{"1e10000000", "1e-10000000", "-1e999999999"} {
			start := time.Now()
			err := in.Validate(map[string]any{
				"handle": "a", "secret": "s", "balance": json.Number(n), "tier": "free", "team_id": 1,
			})
			assert.ErrorIs(t, err, ErrPrecision, n)
			assert.Less(t, time.Since(start), 100*time.Millisecond, n)
		}
	})

	t.Run("trailing zeros do not count as places", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"a","secret":"s","balance":"9999.9900000","tier":"free","team_id":1}`))
		assert.NoError(t, err)

		err = in.Validate(decode(t, `{"handle":"a","secret":"s","balance":"-9999.99","tier":"free","team_id":1}`))
		assert.NoError(t, err)

		err = in.Validate(decode(t, `{"handle":"a","secret":"s","balance":"0.001e1","tier":"free","team_id":1}`))
		assert.NoError(t, err)
	})

	t.Run("integers beyond int64 are rejected", func(t *testing.T) {
		err := in.Validate(map[string]any{
			"handle": "a", "secret": "s", "balance": 1, "tier": "free", "team_id": float64(1 << 63),
		})
		assert.ErrorIs(t, err, ErrWrongType)
	})

	t.Run("wrong types", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":1,"secret":"s","balance":true,"tier":"free","team_id":1.5}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Errors, 3)
		for _, fe := range verr.Errors {
			assert.ErrorIs(t, fe, ErrWrongType)
		}
	})

	t.Run("nullable accepts null, others do not", func(t *testing.T) {
		assert.NoError(t, in.Validate(decode(t, `{"handle":"a","secret":"s","balance":1,"tier":"free","team_id":1,"bio":null}`)))

		err := in.Validate(decode(t, `{"handle":null,"secret":"s","balance":1,"tier":"free","team_id":1}`))
		assert.ErrorIs(t, err, ErrNullValue)
	})

	t.Run("date format", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"a","secret":"s","balance":1,"tier":"free","team_id":1,"renews_on":"01/02/2026"}`))
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("fields outside the schema are rejected", func(t *testing.T) {
		err := in.Validate(decode(t, `{"handle":"a","secret":"s","balance":1,"tier":"free","team_id":1,"id":5,"created_at":"2026-01-01T00:00:00Z"}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Errors, 2)
		assert.Equal(t, "created_at", verr.Errors[0].Field)
		assert.Equal(t, "id", verr.Errors[1].Field)
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestSchema_Descriptor(t *testing.T) {
	e := testEntity(t)
	out := MustDerive(e, "AccountOut", Exclude("secret"))
	in := MustDeriveInput(e, "AccountIn")

	fdp := FileDescriptor("test/accounts.proto", "test.accounts", out, in)
	fd, err := protodesc.NewFile(fdp, protoregistry.GlobalFiles)
	require.NoError(t, err)

	outMsg := fd.Messages().ByName("AccountOut")
	require.NotNil(t, outMsg)
	assert.Nil(t, outMsg.Fields().ByName("secret"))
	assert.Equal(t, protoreflect.MessageKind, outMsg.Fields().ByName("created_at").Kind())
	assert.Equal(t, protoreflect.Int64Kind, outMsg.Fields().ByName("team_id").Kind())

	inMsg := fd.Messages().ByName("AccountIn")
	require.NotNil(t, inMsg)
	assert.Equal(t,
		outMsg.Fields().ByName("handle").Number(),
		inMsg.Fields().ByName("handle").Number(),
		"shared fields keep their number across variants")
}

func TestSchema_Summary(t *testing.T) {
	s := MustDeriveInput(testEntity(t), "AccountIn", Exclude("active"))

	sum := s.Summary()
	assert.Equal(t, "AccountIn", sum.Name)
	assert.Equal(t, "Account", sum.Entity)
	assert.Equal(t, "accounts", sum.Table)
	require.Len(t, sum.Fields, len(s.FieldNames()))

	byName := make(map[string]FieldSummary, len(sum.Fields))
	for _, f := range sum.Fields {
		byName[f.Name] = f
	}
	assert.True(t, byName["handle"].Unique)
	assert.True(t, byName["handle"].Required)
	assert.Equal(t, 5, byName["handle"].MaxLength)
	assert.Equal(t, "decimal", byName["balance"].Kind)
	assert.Equal(t, 6, byName["balance"].Digits)
	assert.Equal(t, []string{"free", "pro"}, byName["tier"].Enum)
	assert.False(t, byName["renews_on"].Required)
	assert.Equal(t, "Team", byName["team_id"].References)
}

func TestField_ValueTag(t *testing.T) {
	assert.Equal(t, "", Bool("active").valueTag())
	assert.Equal(t, "max=20", Char("username", 20).valueTag())
	assert.Equal(t, "max=30,oneof='Cars' 'TV0x2C audio'", Enum("category", 30, "Cars", "TV, audio").valueTag())

	e, err := NewEntity("Item", "items", ID("id"), Enum("category", 30, "Cars", "TV, audio", "a|b"))
	require.NoError(t, err)
	in := MustDeriveInput(e, "ItemIn")

	for _, v := range []string{"Cars", "TV, audio", "a|b"} {
		assert.NoError(t, in.Validate(map[string]any{"category": v}), v)
	}
	assert.ErrorIs(t, in.Validate(map[string]any{"category": "TV"}), ErrNotAllowed)
	assert.ErrorIs(t, in.Validate(map[string]any{"category": "audio"}), ErrNotAllowed)

	_, err = NewEntity("Bad", "bad", ID("id"), Enum("kind", 10, "it's"))
	assert.Error(t, err)
}
