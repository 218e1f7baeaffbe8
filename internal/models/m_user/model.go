package m_user

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the users table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a user.
// Plain Insert so that a duplicate key surfaces as AlreadyExists.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.ID,
		data.Username,
		data.Email,
		data.Password,
		data.IsVerified,
		data.JoinDate,
	})
}

// UpdateMut creates a Spanner mutation for updating specific user columns.
func (m *Model) UpdateMut(id int64, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	return spanner.UpdateMap(TableName, withKey(ID, id, updates))
}

// DeleteMut creates a Spanner mutation for deleting a user.
func (m *Model) DeleteMut(id int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}

func withKey(column string, id int64, updates map[string]interface{}) map[string]interface{} {
	row := make(map[string]interface{}, len(updates)+1)
	for col, val := range updates {
		row[col] = val
	}
	row[column] = id
	return row
}
