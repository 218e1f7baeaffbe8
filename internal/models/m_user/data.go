package m_user

import (
	"time"
)

// Data represents the database model for the users table.
type Data struct {
	ID         int64     `spanner:"id"`
	Username   string    `spanner:"username"`
	Email      string    `spanner:"email"`
	Password   string    `spanner:"password"`
	IsVerified bool      `spanner:"is_verified"`
	JoinDate   time.Time `spanner:"join_date"`
}
