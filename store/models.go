package store

import (
	"github.com/goliatone/go-userstore/pkg/types"
	"github.com/uptrace/bun"
)

// Record models the users row.
type Record struct {
	bun.BaseModel `bun:"table:users"`

	ID       int64  `bun:"id,pk,autoincrement"`
	Username string `bun:"username,notnull,unique"`
	Email    string `bun:"email,notnull,unique"`
	Password string `bun:"password,notnull"`
}

func fromDomain(user types.User) *Record {
	return &Record{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	}
}

func toDomain(rec *Record) *types.User {
	if rec == nil {
		return nil
	}
	return &types.User{
		ID:       rec.ID,
		Username: rec.Username,
		Email:    rec.Email,
		Password: rec.Password,
	}
}

func toDomainList(records []Record) []types.User {
	users := make([]types.User, 0, len(records))
	for i := range records {
		users = append(users, *toDomain(&records[i]))
	}
	return users
}
