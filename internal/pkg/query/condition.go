package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations must generate SQL fragments and parameter maps
// using Spanner's named parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

func paramName(index int) string {
	return fmt.Sprintf("p%d", index)
}

// binaryCondition renders "field <op> @pN".
type binaryCondition struct {
	field string
	op    string
	value interface{}
}

func (c *binaryCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, name), map[string]interface{}{name: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("category", "Cars") generates "category = @p0"
func Eq(field string, value interface{}) Condition {
	return &binaryCondition{field: field, op: "=", value: value}
}

// Gte creates a WHERE condition field >= value.
func Gte(field string, value interface{}) Condition {
	return &binaryCondition{field: field, op: ">=", value: value}
}

// startsWithCondition renders STARTS_WITH(field, @pN).
type startsWithCondition struct {
	field  string
	prefix string
}

// StartsWith matches string columns beginning with prefix.
// Example: StartsWith("name", "Lap") generates "STARTS_WITH(name, @p0)"
func StartsWith(field, prefix string) Condition {
	return &startsWithCondition{field: field, prefix: prefix}
}

func (c *startsWithCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	name := paramName(paramIndex)
	return fmt.Sprintf("STARTS_WITH(%s, @%s)", c.field, name), map[string]interface{}{name: c.prefix}
}
