package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	Role        string
	IsSuperuser string
	Bio         string
	FirstName   string
	LastName    string
	CodeNonce   string
	ConfirmedAt string
	CreatedAt   string
	UpdatedAt   string

	// UniqueUsername and UniqueEmail are the identity constraints.
	UniqueUsername string
	UniqueEmail    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	Role:        "role",
	IsSuperuser: "issuperuser",
	Bio:         "bio",
	FirstName:   "firstname",
	LastName:    "lastname",
	CodeNonce:   "codenonce",
	ConfirmedAt: "confirmedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",

	UniqueUsername: "account_username_key",
	UniqueEmail:    "account_email_key",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Role, t.IsSuperuser, t.Bio,
		t.FirstName, t.LastName, t.ConfirmedAt, t.CreatedAt, t.UpdatedAt,
	}
}
