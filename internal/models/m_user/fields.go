package m_user

// Field name constants for the users table.
const (
	TableName = "users"

	// Sequence feeds ID through GET_NEXT_SEQUENCE_VALUE.
	Sequence = "users_id_seq"

	UsernameIndex = "users_by_username"
	EmailIndex    = "users_by_email"

	ID         = "id"
	Username   = "username"
	Email      = "email"
	Password   = "password"
	IsVerified = "is_verified"
	JoinDate   = "join_date"
)

// Columns lists every column in table order.
var Columns = []string{ID, Username, Email, Password, IsVerified, JoinDate}
